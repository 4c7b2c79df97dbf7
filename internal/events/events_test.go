package events

import (
	"context"
	"testing"
	"time"
)

func TestNewTransactionEvent(t *testing.T) {
	event := NewTransactionEvent(ActionCreated, 42, 7, "expense", 1250)

	if event.Action != ActionCreated {
		t.Errorf("Action = %q, want %q", event.Action, ActionCreated)
	}
	if event.TransactionID != 42 || event.UserID != 7 {
		t.Errorf("ids = %d/%d, want 42/7", event.TransactionID, event.UserID)
	}
	if event.Type != "expense" || event.AmountCents != 1250 {
		t.Errorf("payload = %s/%d, want expense/1250", event.Type, event.AmountCents)
	}
	if event.OccurredAt.IsZero() {
		t.Error("OccurredAt should not be zero")
	}
	if time.Since(event.OccurredAt) > time.Second {
		t.Error("OccurredAt should be recent")
	}
}

func TestTransactionEventJSON(t *testing.T) {
	event := TransactionEvent{
		Action:        ActionUpdated,
		TransactionID: 99,
		UserID:        3,
		Type:          "income",
		AmountCents:   500000,
		OccurredAt:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := TransactionEventFromJSON(data)
	if err != nil {
		t.Fatalf("TransactionEventFromJSON() error = %v", err)
	}

	if parsed.Action != event.Action || parsed.TransactionID != event.TransactionID {
		t.Errorf("parsed = %+v, want %+v", parsed, event)
	}
	if !parsed.OccurredAt.Equal(event.OccurredAt) {
		t.Errorf("OccurredAt = %v, want %v", parsed.OccurredAt, event.OccurredAt)
	}
}

func TestTransactionEventInvalidJSON(t *testing.T) {
	if _, err := TransactionEventFromJSON([]byte(`{"transactionId": "nope"}`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestNewPublisherWithoutURL(t *testing.T) {
	pub, err := NewPublisher("", "smartbudget", "transaction_events")
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	if _, ok := pub.(NoopPublisher); !ok {
		t.Fatalf("expected NoopPublisher, got %T", pub)
	}
	if err := pub.Publish(context.Background(), NewTransactionEvent(ActionDeleted, 1, 1, "expense", 100)); err != nil {
		t.Errorf("noop Publish() error = %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Errorf("noop Close() error = %v", err)
	}
}
