package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"maasertrack/internal/core"
	"maasertrack/internal/persist"
	"maasertrack/internal/store"
)

func newBusinessService() (*BusinessService, *persist.Memory[persist.BusinessSnapshot]) {
	snapshots := persist.NewMemory[persist.BusinessSnapshot]()
	svc := NewBusinessService(store.NewBusiness(), snapshots, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC) }
	return svc, snapshots
}

func expense(memo, date string, cents int64) core.BusinessTransaction {
	return core.BusinessTransaction{
		Amount: core.Money{Cents: cents},
		Date:   date,
		Memo:   memo,
		Status: core.StatusPending,
	}
}

func TestBusinessServiceCreatePersists(t *testing.T) {
	svc, snapshots := newBusinessService()
	ctx := context.Background()

	added, err := svc.Create(ctx, expense("Flight", "2024-03-01", 4200))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if added.ID == "" {
		t.Fatalf("expected generated id")
	}
	if snapshots.Saves() != 1 {
		t.Fatalf("expected one save, got %d", snapshots.Saves())
	}
}

func TestBusinessServiceToggleStatus(t *testing.T) {
	svc, snapshots := newBusinessService()
	ctx := context.Background()
	tx, _ := svc.Create(ctx, expense("Flight", "2024-03-01", 4200))

	status, err := svc.ToggleStatus(ctx, tx.ID)
	if err != nil || status != core.StatusReimbursed {
		t.Fatalf("toggle: %q err=%v", status, err)
	}
	if svc.TotalPending().Cents != 0 {
		t.Fatalf("pending total should drop to zero")
	}
	if snapshots.Saves() != 2 {
		t.Fatalf("toggle should persist, got %d saves", snapshots.Saves())
	}

	if _, err := svc.ToggleStatus(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBusinessServicePersistFailureKeepsMemory(t *testing.T) {
	svc, snapshots := newBusinessService()
	snapshots.SaveErr = errors.New("disk full")
	ctx := context.Background()

	if _, err := svc.Create(ctx, expense("Flight", "2024-03-01", 4200)); err != nil {
		t.Fatalf("create must not fail on persistence error, got %v", err)
	}
	if got := svc.List(core.BusinessFilter{}, core.SortByDate, core.SortAsc); len(got) != 1 {
		t.Fatalf("in-memory state rolled back: %+v", got)
	}
}

func TestBusinessServiceDuplicatesIgnoreVerification(t *testing.T) {
	// The business scan has no verified list; equal amount, memo and close
	// dates always flag.
	svc, _ := newBusinessService()
	ctx := context.Background()
	svc.Create(ctx, expense("Flight", "2024-03-01", 4200))
	svc.Create(ctx, expense("Flight", "2024-03-02", 4200))

	if dups := svc.Duplicates(); len(dups) != 2 {
		t.Fatalf("expected both flagged, got %v", dups)
	}
}

func TestBusinessServiceImportFlow(t *testing.T) {
	svc, _ := newBusinessService()
	ctx := context.Background()
	payload := `[
		{"amount":42,"date":"2024-03-01","memo":"Flight","status":"done"},
		{"date":"2024-03-02"}
	]`

	preview, err := svc.ImportPreview(ctx, []byte(payload))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(preview) != 1 {
		t.Fatalf("expected 1 staged record, got %d", len(preview))
	}
	if preview[0].Status != core.StatusPending {
		t.Fatalf("unknown status should default to pending, got %q", preview[0].Status)
	}

	n, err := svc.ImportConfirm(ctx)
	if err != nil || n != 1 {
		t.Fatalf("confirm: n=%d err=%v", n, err)
	}
	if got := svc.List(core.BusinessFilter{}, core.SortByDate, core.SortAsc); len(got) != 1 {
		t.Fatalf("confirm did not append: %+v", got)
	}
}

func TestBusinessServiceExportCSV(t *testing.T) {
	svc, _ := newBusinessService()
	ctx := context.Background()
	svc.Create(ctx, expense("Flight", "2024-03-01", 4200))

	name, data, err := svc.ExportCSV(core.BusinessFilter{}, core.SortByDate, core.SortAsc)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "business_expenses_2024-03-11.csv" {
		t.Fatalf("filename = %q", name)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][4] != "Status" {
		t.Fatalf("header wrong: %v", rows[0])
	}
	if rows[1][2] != "Flight" || rows[1][3] != "42" || rows[1][4] != "pending" {
		t.Fatalf("row wrong: %v", rows[1])
	}
}
