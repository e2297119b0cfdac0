// Package importer validates pasted or uploaded JSON payloads into staged
// transaction previews. Structural problems are blocking; defective elements
// are skipped silently, per-record errors are never surfaced individually.
package importer

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"maasertrack/internal/core"
)

// ParseError reports a payload that is structurally unusable: not valid JSON
// at all, or a top level that is not an array. The staged preview is cleared
// when one of these is returned.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return e.Reason }

// ErrNoRecords means the payload parsed fine but every element was skipped.
// Informational rather than structural, callers surface it differently.
var ErrNoRecords = errors.New("no valid records found")

// ParseTransactions validates a personal-ledger payload. Each element needs
// type, amount and date; an invalid type counts as missing. Surviving records
// get a fresh id, status is not part of this variant.
func ParseTransactions(data []byte) ([]core.Transaction, error) {
	items, err := decodeArray(data)
	if err != nil {
		return nil, err
	}

	preview := make([]core.Transaction, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		kind, ok := stringField(obj, "type")
		if !ok || !core.TxType(kind).Valid() {
			continue
		}
		amount, ok := amountField(obj)
		if !ok {
			continue
		}
		date, ok := stringField(obj, "date")
		if !ok {
			continue
		}
		if date == "" {
			date = today()
		}
		tx := core.Transaction{
			ID:        uuid.NewString(),
			Type:      core.TxType(kind),
			Amount:    amount,
			Date:      date,
			Time:      optionalString(obj, "time", "00:00"),
			Memo:      optionalString(obj, "memo", ""),
			AccountID: accountField(obj),
		}
		preview = append(preview, tx)
	}
	if len(preview) == 0 {
		return nil, ErrNoRecords
	}
	return preview, nil
}

// ParseBusinessTransactions validates a business-ledger payload. Amount and
// date are required; an invalid status falls back to pending instead of
// skipping the element.
func ParseBusinessTransactions(data []byte) ([]core.BusinessTransaction, error) {
	items, err := decodeArray(data)
	if err != nil {
		return nil, err
	}

	preview := make([]core.BusinessTransaction, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		amount, ok := amountField(obj)
		if !ok {
			continue
		}
		date, ok := stringField(obj, "date")
		if !ok {
			continue
		}
		if date == "" {
			date = today()
		}
		status := core.TxStatus(optionalString(obj, "status", string(core.StatusPending)))
		if !status.Valid() {
			status = core.StatusPending
		}
		tx := core.BusinessTransaction{
			ID:        uuid.NewString(),
			Amount:    amount,
			Date:      date,
			Memo:      optionalString(obj, "memo", ""),
			Status:    status,
			AccountID: accountField(obj),
		}
		preview = append(preview, tx)
	}
	if len(preview) == 0 {
		return nil, ErrNoRecords
	}
	return preview, nil
}

func decodeArray(data []byte) ([]any, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &ParseError{Reason: "invalid JSON, check the syntax"}
	}
	items, ok := payload.([]any)
	if !ok {
		return nil, &ParseError{Reason: "invalid JSON format, must be an array of objects"}
	}
	return items, nil
}

// amountField coerces the amount element, which arrives as a JSON number or
// a numeric string. Anything else, including negatives, fails the element.
func amountField(obj map[string]any) (core.Money, bool) {
	v, ok := obj["amount"]
	if !ok {
		return core.Money{}, false
	}
	switch a := v.(type) {
	case float64:
		m, err := core.MoneyFromNumber(a)
		return m, err == nil
	case string:
		m, err := core.ParseAmount(a)
		return m, err == nil
	default:
		return core.Money{}, false
	}
}

func stringField(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func optionalString(obj map[string]any, key, fallback string) string {
	if s, ok := stringField(obj, key); ok && s != "" {
		return s
	}
	return fallback
}

func accountField(obj map[string]any) *string {
	s, ok := stringField(obj, "account_id")
	if !ok || s == "" {
		return nil
	}
	return &s
}

func today() string {
	return time.Now().Format(core.DateLayout)
}
