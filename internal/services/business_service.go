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

// BusinessService owns the business expense ledger. Bank accounts are not
// part of it; the handlers read those from the personal side.
type BusinessService struct {
	store      *store.Business
	snapshots  persist.BusinessStore
	amqpClient *amqp.Client

	mu      sync.Mutex
	preview []core.BusinessTransaction

	now func() time.Time
}

func NewBusinessService(st *store.Business, snapshots persist.BusinessStore, amqpClient *amqp.Client) *BusinessService {
	return &BusinessService{
		store:      st,
		snapshots:  snapshots,
		amqpClient: amqpClient,
		now:        time.Now,
	}
}

func (s *BusinessService) Load(ctx context.Context) error {
	snap, ok, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load business snapshot: %w", err)
	}
	if !ok {
		slog.InfoContext(ctx, "No business snapshot found, starting empty")
		return nil
	}
	s.store.LoadSnapshot(snap)
	slog.InfoContext(ctx, "Loaded business snapshot", "transactions", len(snap.Transactions))
	return nil
}

func (s *BusinessService) List(filter core.BusinessFilter, key core.SortKey, dir core.SortDir) []core.BusinessTransaction {
	return core.SortBusinessTransactions(core.FilterBusinessTransactions(s.store.List(), filter), key, dir)
}

func (s *BusinessService) Get(id string) (core.BusinessTransaction, bool) {
	return s.store.Get(id)
}

func (s *BusinessService) Create(ctx context.Context, tx core.BusinessTransaction) (core.BusinessTransaction, error) {
	added, err := s.store.Add(tx)
	if err != nil {
		return core.BusinessTransaction{}, err
	}
	s.persistState(ctx)
	s.publishSync(ctx, added.ID)
	return added, nil
}

func (s *BusinessService) Update(ctx context.Context, tx core.BusinessTransaction) error {
	if err := s.store.Update(tx); err != nil {
		return err
	}
	s.persistState(ctx)
	s.publishSync(ctx, tx.ID)
	return nil
}

func (s *BusinessService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.persistState(ctx)
	s.publishSync(ctx, id)
	return nil
}

// ToggleStatus flips an expense between pending and reimbursed.
func (s *BusinessService) ToggleStatus(ctx context.Context, id string) (core.TxStatus, error) {
	status, err := s.store.ToggleStatus(id)
	if err != nil {
		return "", err
	}
	s.persistState(ctx)
	s.publishSync(ctx, id)
	return status, nil
}

// Duplicates runs the business-variant scan, which has no verified list.
func (s *BusinessService) Duplicates() []string {
	return core.DetectBusinessDuplicates(s.store.List())
}

func (s *BusinessService) Patterns() []core.Pattern {
	return core.BusinessPatterns(s.store.List(), s.now())
}

// Suggestions narrows the patterns without the personal-variant boost.
func (s *BusinessService) Suggestions(query string) []core.Pattern {
	return core.Suggest(s.Patterns(), query, false)
}

func (s *BusinessService) TotalPending() core.Money {
	return core.TotalPending(s.store.List())
}

func (s *BusinessService) ExportCSV(filter core.BusinessFilter, key core.SortKey, dir core.SortDir) (string, []byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Date", "Memo", "Amount", "Status"}); err != nil {
		return "", nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range s.List(filter, key, dir) {
		row := []string{t.ID, t.Date, t.Memo, t.Amount.String(), string(t.Status)}
		if err := w.Write(row); err != nil {
			return "", nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, fmt.Errorf("flush csv: %w", err)
	}
	name := fmt.Sprintf("business_expenses_%s.csv", s.now().Format(core.DateLayout))
	return name, buf.Bytes(), nil
}

func (s *BusinessService) ImportPreview(ctx context.Context, data []byte) ([]core.BusinessTransaction, error) {
	preview, err := importer.ParseBusinessTransactions(data)

	s.mu.Lock()
	s.preview = preview
	s.mu.Unlock()

	if err != nil {
		slog.InfoContext(ctx, "Business import preview rejected", "error", err)
		return nil, err
	}
	slog.InfoContext(ctx, "Business import preview staged", "records", len(preview))
	return append([]core.BusinessTransaction(nil), preview...), nil
}

func (s *BusinessService) ImportConfirm(ctx context.Context) (int, error) {
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
	slog.InfoContext(ctx, "Business import confirmed", "records", len(preview))
	return len(preview), nil
}

func (s *BusinessService) ImportDiscard() {
	s.mu.Lock()
	s.preview = nil
	s.mu.Unlock()
}

func (s *BusinessService) ImportPreviewed() []core.BusinessTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.BusinessTransaction(nil), s.preview...)
}

func (s *BusinessService) persistState(ctx context.Context) {
	if err := s.snapshots.Save(ctx, s.store.Snapshot()); err != nil {
		slog.ErrorContext(ctx, "Failed to save business snapshot", "error", err)
	}
}

func (s *BusinessService) publishSync(ctx context.Context, id string) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishRecordSync(ctx, amqp.VariantBusiness, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}
}
