package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

const publishTimeout = 3 * time.Second

var errNacked = errors.New("broker did not confirm the message")

// RabbitPublisher publishes JSON events to a topic exchange in confirm mode,
// so Publish returns only after the broker has taken the message.
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewRabbit(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbit: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p := &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("confirm mode: %w", err)
	}
	return p, nil
}

func (p *RabbitPublisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Publish sends event under routing key. Without a caller deadline it gives up after publishTimeout.
func (p *RabbitPublisher) Publish(ctx context.Context, key string, event any, reqID string) (err error) {
	span, ctx := tracer.StartSpanFromContext(ctx, "amqp.publish",
		tracer.ResourceName(key), tracer.Tag("amqp.exchange", p.exchange))
	defer func() { span.Finish(tracer.WithError(err)) }()

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, publishTimeout)
		defer cancel()
	}

	dc, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Headers:      amqp.Table{"X-Request-ID": reqID},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	acked, err := dc.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("confirm %s: %w", key, err)
	}
	if !acked {
		return fmt.Errorf("publish %s: %w", key, errNacked)
	}
	return nil
}
