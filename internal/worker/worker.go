// Package worker mirrors ledger snapshots to the external spreadsheet. It
// reacts to sync messages from the API process and runs a periodic full
// resync as a safety net for dropped messages.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maasertrack/internal/amqp"
	"maasertrack/internal/log"
	"maasertrack/internal/persist"
	"maasertrack/internal/sheets"
)

type Worker struct {
	personal persist.PersonalStore
	business persist.BusinessStore
	mirror   sheets.LedgerMirror
	logger   *log.Logger
}

func New(personal persist.PersonalStore, business persist.BusinessStore, mirror sheets.LedgerMirror, logger *log.Logger) *Worker {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	}
	return &Worker{
		personal: personal,
		business: business,
		mirror:   mirror,
		logger:   logger,
	}
}

// HandleMessage mirrors the variant named by a sync message. Record IDs are
// advisory: the mirror is a full rewrite, so one message brings the whole
// variant up to date.
func (w *Worker) HandleMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	switch msg.Variant {
	case amqp.VariantPersonal:
		return w.SyncPersonal(ctx)
	case amqp.VariantBusiness:
		return w.SyncBusiness(ctx)
	default:
		return fmt.Errorf("unknown sync variant %q", msg.Variant)
	}
}

// SyncPersonal rewrites the personal sheet from the latest snapshot. A
// never-saved snapshot is mirrored as an empty sheet.
func (w *Worker) SyncPersonal(ctx context.Context) error {
	snap, _, err := w.personal.Load(ctx)
	if err != nil {
		return fmt.Errorf("load personal snapshot: %w", err)
	}
	if err := w.mirror.MirrorPersonal(ctx, snap.Transactions); err != nil {
		return fmt.Errorf("mirror personal ledger: %w", err)
	}
	w.logger.InfoContext(ctx, "Mirrored personal ledger", log.FieldRecords, len(snap.Transactions))
	return nil
}

// SyncBusiness rewrites the business sheet from the latest snapshot.
func (w *Worker) SyncBusiness(ctx context.Context) error {
	snap, _, err := w.business.Load(ctx)
	if err != nil {
		return fmt.Errorf("load business snapshot: %w", err)
	}
	if err := w.mirror.MirrorBusiness(ctx, snap.Transactions); err != nil {
		return fmt.Errorf("mirror business ledger: %w", err)
	}
	w.logger.InfoContext(ctx, "Mirrored business ledger", log.FieldRecords, len(snap.Transactions))
	return nil
}

// Resync mirrors both variants. Each variant is attempted even when the
// other fails.
func (w *Worker) Resync(ctx context.Context) error {
	return errors.Join(w.SyncPersonal(ctx), w.SyncBusiness(ctx))
}

// RunResync performs a full resync on startup and then on every tick until
// ctx is done. Resync failures are logged, not fatal: the next tick retries.
func (w *Worker) RunResync(ctx context.Context, interval time.Duration) error {
	if err := w.Resync(ctx); err != nil {
		w.logger.ErrorContext(ctx, "Initial resync failed", log.FieldError, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Resync(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Periodic resync failed", log.FieldError, err)
			}
		}
	}
}
