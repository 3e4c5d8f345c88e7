package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/svend4/flowershop-orders/internal/domain"
)

// LogNotifier is the notification sink: it records the notification in the
// worker log. Real channels (email, SMS) would sit behind the same port.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) Notify(_ context.Context, p domain.OrderCreatedPayload) error {
	n.Logger.Info("NOTIFY: order created",
		zap.Int64("order_id", p.OrderID),
		zap.String("customer_name", p.CustomerName))
	return nil
}

var _ domain.Notifier = (*LogNotifier)(nil)
