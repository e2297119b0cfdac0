package persist

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"maasertrack/internal/core"
)

func TestFileLoadAbsent(t *testing.T) {
	f := NewFile[PersonalSnapshot](filepath.Join(t.TempDir(), "data.json"))
	_, ok, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("missing file reported as present")
	}
}

func TestFileSaveLoadRoundTrip(t *testing.T) {
	f := NewFile[PersonalSnapshot](filepath.Join(t.TempDir(), "data.json"))
	snap := PersonalSnapshot{
		Transactions: []core.Transaction{
			{ID: "1", Type: core.TypeIncome, Amount: core.Money{Cents: 10000}, Date: "2024-01-01", Time: "09:00", Memo: "Paycheck"},
		},
		Accounts: []core.BankAccount{{ID: "a1", Name: "Checking"}},
		Verified: []string{"1"},
	}
	ctx := context.Background()
	if err := f.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := f.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].Amount.Cents != 10000 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if len(got.Verified) != 1 || got.Verified[0] != "1" {
		t.Fatalf("verified list lost: %+v", got.Verified)
	}
}

func TestFileSaveWritesBackupOfPreviousSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	f := NewFile[BusinessSnapshot](path)
	ctx := context.Background()

	first := BusinessSnapshot{Transactions: []core.BusinessTransaction{{ID: "old", Date: "2024-01-01", Status: core.StatusPending}}}
	if err := f.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}
	// No previous snapshot existed, so no backup yet.
	if _, err := os.Stat(filepath.Join(dir, "data_backup.json")); !os.IsNotExist(err) {
		t.Fatalf("backup written on first save: %v", err)
	}

	second := BusinessSnapshot{Transactions: []core.BusinessTransaction{{ID: "new", Date: "2024-01-02", Status: core.StatusPending}}}
	if err := f.Save(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}
	backup, err := os.ReadFile(filepath.Join(dir, "data_backup.json"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !bytes.Contains(backup, []byte(`"old"`)) {
		t.Fatalf("backup does not hold the previous snapshot: %s", backup)
	}
	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read current: %v", err)
	}
	if !bytes.Contains(current, []byte(`"new"`)) {
		t.Fatalf("current file does not hold the latest snapshot: %s", current)
	}
}

func TestFileLoadCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{{{"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	f := NewFile[PersonalSnapshot](path)
	if _, _, err := f.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}
