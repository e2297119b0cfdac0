package amqp

import (
	"testing"
	"time"
)

func TestNewRecordSyncMessage(t *testing.T) {
	msg := NewRecordSyncMessage(VariantPersonal, "tx-1")

	if msg.Variant != VariantPersonal {
		t.Errorf("Variant = %v, want %v", msg.Variant, VariantPersonal)
	}
	if msg.ID != "tx-1" {
		t.Errorf("ID = %v, want tx-1", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestRecordSyncMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &RecordSyncMessage{
		Variant:   VariantBusiness,
		ID:        "b-9",
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := RecordSyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("RecordSyncMessageFromJSON() error = %v", err)
	}

	if parsed.Variant != msg.Variant {
		t.Errorf("Parsed Variant = %v, want %v", parsed.Variant, msg.Variant)
	}
	if parsed.ID != msg.ID {
		t.Errorf("Parsed ID = %v, want %v", parsed.ID, msg.ID)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestRecordSyncMessage_InvalidJSON(t *testing.T) {
	if _, err := RecordSyncMessageFromJSON([]byte(`{"variant": 5}`)); err == nil {
		t.Error("RecordSyncMessageFromJSON() should fail with mistyped fields")
	}
}
