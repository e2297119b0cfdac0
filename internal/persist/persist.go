// Package persist defines the snapshot documents and the load/save ports the
// entity stores write through. Snapshots are whole-document: every save
// replaces the previous one, there are no partial updates and no version
// field.
package persist

import (
	"context"

	"maasertrack/internal/core"
)

// PersonalSnapshot is the persisted personal ledger.
type PersonalSnapshot struct {
	Transactions []core.Transaction `json:"transactions"`
	Accounts     []core.BankAccount `json:"accounts"`
	Verified     []string           `json:"verified_transactions"`
}

// BusinessSnapshot is the persisted business ledger. Accounts are not part
// of it; readers take them from the personal snapshot as a best-effort
// secondary source.
type BusinessSnapshot struct {
	Transactions []core.BusinessTransaction `json:"transactions"`
}

// PersonalStore loads and saves the personal snapshot. Load reports false
// when no snapshot has ever been saved, which is not an error.
type PersonalStore interface {
	Load(ctx context.Context) (PersonalSnapshot, bool, error)
	Save(ctx context.Context, snap PersonalSnapshot) error
}

// BusinessStore loads and saves the business snapshot.
type BusinessStore interface {
	Load(ctx context.Context) (BusinessSnapshot, bool, error)
	Save(ctx context.Context, snap BusinessSnapshot) error
}
