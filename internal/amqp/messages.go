package amqp

import (
	"encoding/json"
	"time"
)

// Ledger variants carried in sync messages.
const (
	VariantPersonal = "personal"
	VariantBusiness = "business"
)

// RecordSyncMessage asks the worker to mirror one ledger record. It carries
// only the variant and the record id; the worker reads the current state from
// the snapshot store, so a stale message is harmless.
type RecordSyncMessage struct {
	Variant   string    `json:"variant"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordSyncMessage(variant, id string) *RecordSyncMessage {
	return &RecordSyncMessage{
		Variant:   variant,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
