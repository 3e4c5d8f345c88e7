package natsstan

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/svend4/flowershop-orders/internal/domain"
)

const (
	defaultPublishAttempts = 20
	defaultPublishDelay    = time.Second
)

// Publisher delivers events to the durable subject with a bounded retry
// loop. Each attempt opens its own connection, publishes one message and
// closes the connection, so a half-dead session never wedges the loop.
type Publisher struct {
	Connector *Connector
	Subject   string
	Attempts  int
	Delay     time.Duration
	Logger    *zap.Logger
}

// Publish serializes the envelope and retries delivery. A returned error
// means every attempt failed and the event is lost; the order commit has
// already happened by then, so callers log it and move on.
func (p *Publisher) Publish(ctx context.Context, event string, payload any) error {
	body, err := domain.EncodeEvent(event, payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}

	attempts := p.Attempts
	if attempts <= 0 {
		attempts = defaultPublishAttempts
	}
	delay := p.Delay
	if delay <= 0 {
		delay = defaultPublishDelay
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = p.publishOnce(body); lastErr == nil {
			return nil
		}
		p.Logger.Warn("publish attempt failed",
			zap.String("event", event),
			zap.Int("attempt", attempt),
			zap.Error(lastErr))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("event delivery lost after %d attempts: %w", attempts, lastErr)
}

func (p *Publisher) publishOnce(body []byte) error {
	conn, err := p.Connector.dial()
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.Publish(p.Subject, body)
}

var _ domain.EventPublisher = (*Publisher)(nil)
