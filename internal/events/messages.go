package events

import (
	"encoding/json"
	"time"
)

// Transaction lifecycle actions carried on the wire.
const (
	ActionCreated = "transaction.created"
	ActionUpdated = "transaction.updated"
	ActionDeleted = "transaction.deleted"
)

// TransactionEvent is the message emitted after each successful write to a
// user's transactions. Consumers fetch the full row from the database when
// they need more than this envelope.
type TransactionEvent struct {
	Action        string    `json:"action"`
	TransactionID int64     `json:"transactionId"`
	UserID        int64     `json:"userId"`
	Type          string    `json:"type"`
	AmountCents   int64     `json:"amountCents"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewTransactionEvent builds an event stamped with the current time.
func NewTransactionEvent(action string, transactionID, userID int64, txType string, amountCents int64) TransactionEvent {
	return TransactionEvent{
		Action:        action,
		TransactionID: transactionID,
		UserID:        userID,
		Type:          txType,
		AmountCents:   amountCents,
		OccurredAt:    time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes an event from JSON bytes.
func TransactionEventFromJSON(data []byte) (TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return TransactionEvent{}, err
	}
	return e, nil
}
