package natsstan

import (
	"context"
	"fmt"
	"time"

	stan "github.com/nats-io/stan.go"
	"go.uber.org/zap"
)

const (
	defaultMaxInflight = 5
	defaultAckWait     = 30 * time.Second
)

// Handler processes one delivered message body. A nil return acknowledges
// the message; an error leaves it unacked so the broker redelivers it.
type Handler func(ctx context.Context, data []byte) error

// Subscriber runs a durable queue-group subscription with manual acks and
// a bounded in-flight window. Losing the connection tears the session down
// and the outer loop reconnects from scratch.
type Subscriber struct {
	Connector   *Connector
	Subject     string
	QueueGroup  string
	Durable     string
	MaxInflight int
	AckWait     time.Duration
	Logger      *zap.Logger
}

// Run blocks consuming messages until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context, handler Handler) error {
	for {
		if err := s.consume(ctx, handler); err != nil {
			s.Logger.Warn("consume session ended", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Connector.Retry.Delay):
		}
	}
}

// consume runs one connect-subscribe-wait session. It returns when the
// connection is lost, the subscription cannot be opened, or ctx is done.
func (s *Subscriber) consume(ctx context.Context, handler Handler) error {
	lost := make(chan error, 1)
	conn, err := s.Connector.Connect(ctx, stan.SetConnectionLostHandler(func(_ stan.Conn, reason error) {
		lost <- reason
	}))
	if err != nil {
		return err
	}
	defer conn.Close()

	inflight := s.MaxInflight
	if inflight <= 0 {
		inflight = defaultMaxInflight
	}
	ackWait := s.AckWait
	if ackWait <= 0 {
		ackWait = defaultAckWait
	}

	sub, err := conn.QueueSubscribe(s.Subject, s.QueueGroup, func(m *stan.Msg) {
		hCtx, cancel := context.WithTimeout(context.Background(), ackWait)
		defer cancel()
		if err := handler(hCtx, m.Data); err != nil {
			// leave unacked, the broker redelivers after AckWait
			s.Logger.Warn("handler failed, message will redeliver", zap.Error(err))
			return
		}
		if err := m.Ack(); err != nil {
			s.Logger.Warn("ack failed", zap.Error(err))
		}
	}, stan.DurableName(s.Durable),
		stan.SetManualAckMode(),
		stan.AckWait(ackWait),
		stan.MaxInflight(inflight),
		stan.DeliverAllAvailable())
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", s.Subject, err)
	}
	s.Logger.Info("consuming",
		zap.String("subject", s.Subject),
		zap.String("durable", s.Durable),
		zap.Int("max_inflight", inflight))

	select {
	case <-ctx.Done():
		// Close (not Unsubscribe) keeps the durable state for the next run
		_ = sub.Close()
		return nil
	case reason := <-lost:
		return fmt.Errorf("broker connection lost: %w", reason)
	}
}
