// Package sheets defines the outbound mirror port for the ledger.
package sheets

import (
	"context"

	"maasertrack/internal/core"
)

// LedgerMirror rewrites the external spreadsheet from the current ledger
// state. Full rewrites keep the mirror idempotent: replaying a sync message
// can never duplicate a row.
type LedgerMirror interface {
	MirrorPersonal(ctx context.Context, txs []core.Transaction) error
	MirrorBusiness(ctx context.Context, txs []core.BusinessTransaction) error
}
