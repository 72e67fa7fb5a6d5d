package mail

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/tazhibayda/inventory-service/internal/log"
	"github.com/tazhibayda/inventory-service/internal/metrics"
	"github.com/tazhibayda/inventory-service/internal/queue"
)

// Handler turns mail.* events into messages. Unknown keys and bad payloads are
// dropped, since requeueing them would loop forever.
func Handler(s *Sender) queue.Handler {
	return func(ctx context.Context, key string, body []byte) error {
		var m Message
		switch key {
		case queue.KeyActivation:
			var ev queue.ActivationRequested
			if err := json.Unmarshal(body, &ev); err != nil {
				log.L().Warn("bad activation event", zap.Error(err))
				metrics.MailEvents.WithLabelValues(key, "dropped").Inc()
				return nil
			}
			m = Message{To: ev.Email, Template: TemplateActivation, Data: ev}
		case queue.KeyWelcome:
			var ev queue.UserActivated
			if err := json.Unmarshal(body, &ev); err != nil {
				log.L().Warn("bad welcome event", zap.Error(err))
				metrics.MailEvents.WithLabelValues(key, "dropped").Inc()
				return nil
			}
			m = Message{To: ev.Email, Template: TemplateWelcome, Data: ev}
		default:
			log.L().Warn("unknown routing key", zap.String("key", key))
			metrics.MailEvents.WithLabelValues("unknown", "dropped").Inc()
			return nil
		}
		if m.To == "" {
			log.L().Warn("event without recipient", zap.String("key", key))
			metrics.MailEvents.WithLabelValues(key, "dropped").Inc()
			return nil
		}
		if err := s.Send(ctx, m); err != nil {
			metrics.MailEvents.WithLabelValues(key, "failed").Inc()
			return err
		}
		metrics.MailEvents.WithLabelValues(key, "sent").Inc()
		return nil
	}
}
