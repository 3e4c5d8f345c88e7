package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/svend4/flowershop-orders/internal/domain"
)

// Validation happens before any database round trip, so these run against
// a store with no pool attached.
func TestCreateOrderRejectsInvalidInput(t *testing.T) {
	s := NewPostgresOrderStore(nil, zap.NewNop())

	t.Run("EmptyRequest", func(t *testing.T) {
		_, err := s.CreateOrder(context.Background(), domain.OrderRequest{})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("NoLines", func(t *testing.T) {
		_, err := s.CreateOrder(context.Background(), domain.OrderRequest{CustomerName: "Anna"})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("ZeroQty", func(t *testing.T) {
		_, err := s.CreateOrder(context.Background(), domain.OrderRequest{
			CustomerName: "Anna",
			Lines:        []domain.LineInput{{ProductID: 1, Qty: 0}},
		})
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}
