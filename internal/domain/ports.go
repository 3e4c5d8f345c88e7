package domain

import "context"

// OrderStore — port for transactional order persistence.
type OrderStore interface {
	// CreateOrder commits the order and all its lines atomically and
	// returns the assigned order id.
	CreateOrder(ctx context.Context, req OrderRequest) (int64, error)
	GetOrder(ctx context.Context, id int64) (Order, error)
}

// EventPublisher — port for handing a committed-order event to the broker.
// Implementations retry internally; a returned error means delivery was
// lost after the retry budget ran out.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

// Notifier — port for the notification side effect of a consumed event.
type Notifier interface {
	Notify(ctx context.Context, p OrderCreatedPayload) error
}

// SeenSet remembers which orders were already notified, so redelivered
// events do not repeat the side effect.
type SeenSet interface {
	Contains(orderID int64) bool
	Add(orderID int64)
}

// Shared domain errors.
var (
	ErrNotFound   = notFoundError("order not found")
	ErrValidation = validationError("invalid order")
)

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type validationError string

func (e validationError) Error() string { return string(e) }
