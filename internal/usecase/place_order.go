package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/svend4/flowershop-orders/internal/domain"
)

// PlaceOrder — commit an order and announce it on the event stream.
type PlaceOrder struct {
	Store     domain.OrderStore
	Publisher domain.EventPublisher
	Logger    *zap.Logger
}

// Execute persists the order, then publishes order.created best-effort.
// The result reflects persistence only: a lost event never fails a
// committed order.
func (uc PlaceOrder) Execute(ctx context.Context, req domain.OrderRequest) (int64, error) {
	orderID, err := uc.Store.CreateOrder(ctx, req)
	if err != nil {
		return 0, err
	}

	payload := domain.OrderCreatedPayload{OrderID: orderID, CustomerName: req.CustomerName}
	if err := uc.Publisher.Publish(ctx, domain.EventOrderCreated, payload); err != nil {
		uc.Logger.Error("order.created event lost",
			zap.Int64("order_id", orderID),
			zap.Error(err))
	}
	return orderID, nil
}
