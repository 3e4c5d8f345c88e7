package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderRequestValidate(t *testing.T) {
	valid := OrderRequest{
		CustomerName: "Anna",
		Lines:        []LineInput{{ProductID: 1, Qty: 2}},
	}

	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("EmptyName", func(t *testing.T) {
		req := valid
		req.CustomerName = ""
		require.ErrorIs(t, req.Validate(), ErrValidation)
	})

	t.Run("WhitespaceName", func(t *testing.T) {
		req := valid
		req.CustomerName = "   "
		require.ErrorIs(t, req.Validate(), ErrValidation)
	})

	t.Run("NoLines", func(t *testing.T) {
		req := valid
		req.Lines = nil
		require.ErrorIs(t, req.Validate(), ErrValidation)
	})

	t.Run("ZeroQty", func(t *testing.T) {
		req := valid
		req.Lines = []LineInput{{ProductID: 1, Qty: 0}}
		require.ErrorIs(t, req.Validate(), ErrValidation)
	})
}

func TestEncodeEvent(t *testing.T) {
	body, err := EncodeEvent(EventOrderCreated, OrderCreatedPayload{OrderID: 1, CustomerName: "Anna"})
	require.NoError(t, err)
	require.JSONEq(t,
		`{"event":"order.created","payload":{"order_id":1,"customer_name":"Anna"}}`,
		string(body))
}

func TestEnvelopeDecodeToleratesUnknownFields(t *testing.T) {
	raw := []byte(`{"event":"order.created","payload":{"order_id":7,"customer_name":"Boris","source":"web","total":19.98}}`)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Equal(t, EventOrderCreated, env.Event)

	var p OrderCreatedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	require.Equal(t, int64(7), p.OrderID)
	require.Equal(t, "Boris", p.CustomerName)
}
