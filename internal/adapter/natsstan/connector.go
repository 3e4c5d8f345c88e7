package natsstan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	stan "github.com/nats-io/stan.go"
	"go.uber.org/zap"
)

// RetryPolicy controls how a Connector retries dialing the broker.
// MaxAttempts == 0 means retry until the context is cancelled.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DialFunc opens one broker connection. Injectable so tests can simulate
// N consecutive connection failures.
type DialFunc func(opts ...stan.Option) (stan.Conn, error)

// Connector establishes broker connections with retry. It holds no shared
// state beyond its configuration; a returned connection belongs to the
// caller.
type Connector struct {
	ClusterID string
	ClientID  string
	URL       string
	Retry     RetryPolicy
	Logger    *zap.Logger
	Dial      DialFunc // nil means stan.Connect
}

func (c *Connector) dial(opts ...stan.Option) (stan.Conn, error) {
	if c.Dial != nil {
		return c.Dial(opts...)
	}
	// client IDs must be unique per connection or the broker evicts the
	// previous session
	clientID := fmt.Sprintf("%s-%s", c.ClientID, uuid.NewString()[:8])
	opts = append([]stan.Option{stan.NatsURL(c.URL)}, opts...)
	return stan.Connect(c.ClusterID, clientID, opts...)
}

// Connect dials the broker, retrying per the policy until it succeeds, the
// attempt budget runs out, or ctx is cancelled.
func (c *Connector) Connect(ctx context.Context, opts ...stan.Option) (stan.Conn, error) {
	var lastErr error
	for attempt := 1; c.Retry.MaxAttempts == 0 || attempt <= c.Retry.MaxAttempts; attempt++ {
		conn, err := c.dial(opts...)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		c.Logger.Warn("broker connect failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.Retry.Delay):
		}
	}
	return nil, fmt.Errorf("broker unreachable after %d attempts: %w", c.Retry.MaxAttempts, lastErr)
}
