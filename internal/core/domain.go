package core

import (
	"errors"
	"strings"
)

const (
	// Personal transaction types. Maaser entries record tithe actually given.
	TypeIncome TxType = "income"
	TypeMaaser TxType = "maaser"

	// Business transaction reimbursement states.
	StatusPending    TxStatus = "pending"
	StatusReimbursed TxStatus = "reimbursed"
)

type (
	TxType   string
	TxStatus string

	// Transaction is a personal ledger entry. Date ("2006-01-02") and Time
	// ("15:04") are kept as strings and parsed on use: a malformed value
	// degrades the derivations that need it (duplicates, patterns, chart)
	// by exclusion instead of failing the whole computation.
	Transaction struct {
		ID        string  `json:"id"`
		Type      TxType  `json:"type"`
		Amount    Money   `json:"amount"`
		Date      string  `json:"date"`
		Time      string  `json:"time"`
		Memo      string  `json:"memo"`
		AccountID *string `json:"account_id"`
	}

	// BusinessTransaction is a business expense awaiting reimbursement.
	// All business entries are outflows, so there is no type field.
	BusinessTransaction struct {
		ID        string   `json:"id"`
		Amount    Money    `json:"amount"`
		Date      string   `json:"date"`
		Memo      string   `json:"memo"`
		Status    TxStatus `json:"status"`
		AccountID *string  `json:"account_id"`
	}

	// BankAccount is a named account transactions may reference. A nil
	// Transaction.AccountID means cash; a dangling reference is tolerated.
	BankAccount struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
)

var (
	ErrInvalidAmount = errors.New("amount must be a valid non-negative number")
	ErrMissingDate   = errors.New("date is required")
	ErrMissingTime   = errors.New("time is required")
	ErrInvalidType   = errors.New("type must be income or maaser")
	ErrInvalidStatus = errors.New("status must be pending or reimbursed")
	ErrEmptyName     = errors.New("name is required")
)

// Valid reports whether t is one of the known transaction types.
func (t TxType) Valid() bool {
	return t == TypeIncome || t == TypeMaaser
}

// Valid reports whether s is one of the known reimbursement states.
func (s TxStatus) Valid() bool {
	return s == StatusPending || s == StatusReimbursed
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Date) == "" {
		return ErrMissingDate
	}
	if strings.TrimSpace(t.Time) == "" {
		return ErrMissingTime
	}
	return nil
}

func (t BusinessTransaction) Validate() error {
	if strings.TrimSpace(t.Date) == "" {
		return ErrMissingDate
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (a BankAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
