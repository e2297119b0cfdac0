// Package services orchestrates the entity stores, the snapshot backends and
// the sync message publishing. The stores stay the source of truth; a failed
// save is logged and never rolls memory back.
package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"maasertrack/internal/amqp"
	"maasertrack/internal/core"
	"maasertrack/internal/importer"
	"maasertrack/internal/persist"
	"maasertrack/internal/store"
)

// PersonalService owns the personal ledger: transactions, accounts, the
// verified-duplicate list and the staged import preview.
type PersonalService struct {
	store      *store.Personal
	snapshots  persist.PersonalStore
	amqpClient *amqp.Client

	mu      sync.Mutex
	preview []core.Transaction

	now func() time.Time
}

func NewPersonalService(st *store.Personal, snapshots persist.PersonalStore, amqpClient *amqp.Client) *PersonalService {
	return &PersonalService{
		store:      st,
		snapshots:  snapshots,
		amqpClient: amqpClient,
		now:        time.Now,
	}
}

// Load hydrates the store from the snapshot backend. A missing snapshot is a
// fresh start, not an error.
func (s *PersonalService) Load(ctx context.Context) error {
	snap, ok, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load personal snapshot: %w", err)
	}
	if !ok {
		slog.InfoContext(ctx, "No personal snapshot found, starting empty")
		return nil
	}
	s.store.LoadSnapshot(snap)
	slog.InfoContext(ctx, "Loaded personal snapshot",
		"transactions", len(snap.Transactions),
		"accounts", len(snap.Accounts),
		"verified", len(snap.Verified))
	return nil
}

// List returns the ledger filtered then sorted.
func (s *PersonalService) List(filter core.TransactionFilter, key core.SortKey, dir core.SortDir) []core.Transaction {
	return core.SortTransactions(core.FilterTransactions(s.store.List(), filter), key, dir)
}

func (s *PersonalService) Get(id string) (core.Transaction, bool) {
	return s.store.Get(id)
}

func (s *PersonalService) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	added, err := s.store.Add(tx)
	if err != nil {
		return core.Transaction{}, err
	}
	s.persistState(ctx)
	s.publishSync(ctx, added.ID)
	return added, nil
}

func (s *PersonalService) Update(ctx context.Context, tx core.Transaction) error {
	if err := s.store.Update(tx); err != nil {
		return err
	}
	s.persistState(ctx)
	s.publishSync(ctx, tx.ID)
	return nil
}

func (s *PersonalService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.persistState(ctx)
	s.publishSync(ctx, id)
	return nil
}

// ToggleVerified flips duplicate acknowledgement and reports the new state.
func (s *PersonalService) ToggleVerified(ctx context.Context, id string) (bool, error) {
	on, err := s.store.ToggleVerified(id)
	if err != nil {
		return false, err
	}
	s.persistState(ctx)
	return on, nil
}

func (s *PersonalService) Duplicates() []string {
	return core.DetectDuplicates(s.store.List(), s.store.Verified())
}

func (s *PersonalService) Patterns(kind core.TxType) []core.Pattern {
	return core.TransactionPatterns(s.store.List(), kind, s.now())
}

func (s *PersonalService) Suggestions(kind core.TxType, query string) []core.Pattern {
	return core.Suggest(s.Patterns(kind), query, true)
}

func (s *PersonalService) Summary() core.Summary {
	return core.Summarize(s.store.List())
}

func (s *PersonalService) Chart() []core.MonthBucket {
	return core.MonthlyChart(s.store.List())
}

func (s *PersonalService) Accounts() []core.BankAccount {
	return s.store.Accounts()
}

func (s *PersonalService) AddAccount(ctx context.Context, name string) (core.BankAccount, error) {
	acc, err := s.store.AddAccount(name)
	if err != nil {
		return core.BankAccount{}, err
	}
	s.persistState(ctx)
	return acc, nil
}

func (s *PersonalService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.store.DeleteAccount(id); err != nil {
		return err
	}
	s.persistState(ctx)
	return nil
}

// ExportCSV renders the currently filtered and sorted ledger. The filename
// embeds today's date.
func (s *PersonalService) ExportCSV(filter core.TransactionFilter, key core.SortKey, dir core.SortDir) (string, []byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Type", "Amount", "Date", "Time", "Memo"}); err != nil {
		return "", nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range s.List(filter, key, dir) {
		row := []string{t.ID, string(t.Type), t.Amount.String(), t.Date, t.Time, t.Memo}
		if err := w.Write(row); err != nil {
			return "", nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("flush csv: %w", err)
	}
	name := fmt.Sprintf("maaser_transactions_%s.csv", s.now().Format(core.DateLayout))
	return name, buf.Bytes(), nil
}

// ImportPreview validates the payload and stages the surviving records,
// replacing any previous preview wholesale. Both error classes clear it.
func (s *PersonalService) ImportPreview(ctx context.Context, data []byte) ([]core.Transaction, error) {
	preview, err := importer.ParseTransactions(data)

	s.mu.Lock()
	s.preview = preview
	s.mu.Unlock()

	if err != nil {
		slog.InfoContext(ctx, "Personal import preview rejected", "error", err)
		return nil, err
	}
	slog.InfoContext(ctx, "Personal import preview staged", "records", len(preview))
	return append([]core.Transaction(nil), preview...), nil
}

// ImportConfirm appends the staged preview to the store and clears it.
func (s *PersonalService) ImportConfirm(ctx context.Context) (int, error) {
	s.mu.Lock()
	preview := s.preview
	s.preview = nil
	s.mu.Unlock()

	if len(preview) == 0 {
		return 0, importer.ErrNoRecords
	}
	s.store.Append(preview)
	s.persistState(ctx)
	for _, t := range preview {
		s.publishSync(ctx, t.ID)
	}
	slog.InfoContext(ctx, "Personal import confirmed", "records", len(preview))
	return len(preview), nil
}

// ImportDiscard drops the staged preview.
func (s *PersonalService) ImportDiscard() {
	s.mu.Lock()
	s.preview = nil
	s.mu.Unlock()
}

// ImportPreviewed returns a copy of the staged records.
func (s *PersonalService) ImportPreviewed() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.preview...)
}

func (s *PersonalService) persistState(ctx context.Context) {
	if err := s.snapshots.Save(ctx, s.store.Snapshot()); err != nil {
		slog.ErrorContext(ctx, "Failed to save personal snapshot", "error", err)
	}
}

func (s *PersonalService) publishSync(ctx context.Context, id string) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishRecordSync(ctx, amqp.VariantPersonal, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}
}
