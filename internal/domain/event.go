package domain

import "encoding/json"

// Event names carried in the queue envelope.
const EventOrderCreated = "order.created"

// Envelope is the queue wire format: {"event": ..., "payload": {...}}.
// Payload stays raw so consumers can ignore events they do not handle.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// OrderCreatedPayload carries the minimal fact downstream consumers need.
// Decoding tolerates unknown extra fields.
type OrderCreatedPayload struct {
	OrderID      int64  `json:"order_id"`
	CustomerName string `json:"customer_name"`
}

// EncodeEvent serializes an event into the envelope wire format.
func EncodeEvent(event string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Payload: raw})
}
