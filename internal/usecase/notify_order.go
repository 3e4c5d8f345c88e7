package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/svend4/flowershop-orders/internal/domain"
)

// NotifyOrderCreated — handle one consumed message from the events queue.
type NotifyOrderCreated struct {
	Notifier domain.Notifier
	Seen     domain.SeenSet
	Logger   *zap.Logger
}

// Execute decodes the envelope and fires the notification. Malformed
// messages return nil so the consumer acks them: a poison message must not
// block the queue. A notifier error returns non-nil, leaving the message
// unacked for redelivery.
func (uc NotifyOrderCreated) Execute(ctx context.Context, data []byte) error {
	var env domain.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		uc.Logger.Warn("dropping malformed event", zap.Error(err))
		return nil
	}
	if env.Event != domain.EventOrderCreated {
		uc.Logger.Info("ignoring event", zap.String("event", env.Event))
		return nil
	}

	var p domain.OrderCreatedPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		uc.Logger.Warn("dropping malformed order.created payload", zap.Error(err))
		return nil
	}

	if uc.Seen != nil && uc.Seen.Contains(p.OrderID) {
		uc.Logger.Info("duplicate delivery, already notified", zap.Int64("order_id", p.OrderID))
		return nil
	}
	if err := uc.Notifier.Notify(ctx, p); err != nil {
		return fmt.Errorf("notify order %d: %w", p.OrderID, err)
	}
	// mark only after the side effect: a failure above must stay eligible
	// for redelivery
	if uc.Seen != nil {
		uc.Seen.Add(p.OrderID)
	}
	return nil
}
