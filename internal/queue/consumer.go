package queue

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/tazhibayda/inventory-service/internal/log"
)

// Handler processes one delivery. A non-nil error requeues it.
type Handler func(ctx context.Context, key string, body []byte) error

type Consumer struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	q    string
}

func NewConsumer(url, exchange, queue, key string) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbit: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	fail := func(stage string, err error) (*Consumer, error) {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", stage, err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fail("declare exchange", err)
	}
	qd, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return fail("declare queue", err)
	}
	if err := ch.QueueBind(qd.Name, key, exchange, false, nil); err != nil {
		return fail("bind queue", err)
	}

	return &Consumer{conn: conn, ch: ch, q: qd.Name}, nil
}

func (c *Consumer) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Consume runs workers until ctx is done.
func (c *Consumer) Consume(ctx context.Context, workers int, handle Handler) error {
	if c == nil || c.ch == nil {
		return fmt.Errorf("consumer is not initialized")
	}
	if workers <= 0 {
		workers = 1
	}

	if err := c.ch.Qos(workers*4, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}
	msgs, err := c.ch.Consume(c.q, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case d, ok := <-msgs:
					if !ok {
						return
					}
					process(ctx, d, handle)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	<-ctx.Done()
	wg.Wait()
	return nil
}

type acker interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func process(ctx context.Context, d amqp.Delivery, handle Handler) {
	settle(ctx, d, d.RoutingKey, d.Body, requestID(d.Headers), handle)
}

func settle(ctx context.Context, a acker, key string, body []byte, reqID string, handle Handler) {
	l := log.L().With(zap.String("key", key), zap.String("request_id", reqID))
	if err := handle(ctx, key, body); err != nil {
		l.Warn("delivery failed, requeue", zap.Error(err))
		_ = a.Nack(false, true)
		return
	}
	_ = a.Ack(false)
}

func requestID(h amqp.Table) string {
	if v, ok := h["X-Request-ID"].(string); ok {
		return v
	}
	return ""
}
