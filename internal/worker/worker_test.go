package worker

import (
	"context"
	"errors"
	"testing"

	"maasertrack/internal/amqp"
	"maasertrack/internal/core"
	"maasertrack/internal/persist"
)

type fakeMirror struct {
	personalCalls int
	businessCalls int
	lastPersonal  []core.Transaction
	lastBusiness  []core.BusinessTransaction
	err           error
}

func (m *fakeMirror) MirrorPersonal(ctx context.Context, txs []core.Transaction) error {
	m.personalCalls++
	m.lastPersonal = txs
	return m.err
}

func (m *fakeMirror) MirrorBusiness(ctx context.Context, txs []core.BusinessTransaction) error {
	m.businessCalls++
	m.lastBusiness = txs
	return m.err
}

func newTestWorker() (*Worker, *persist.Memory[persist.PersonalSnapshot], *persist.Memory[persist.BusinessSnapshot], *fakeMirror) {
	personal := persist.NewMemory[persist.PersonalSnapshot]()
	business := persist.NewMemory[persist.BusinessSnapshot]()
	mirror := &fakeMirror{}
	return New(personal, business, mirror, nil), personal, business, mirror
}

func TestHandleMessagePersonal(t *testing.T) {
	w, personal, _, mirror := newTestWorker()
	ctx := context.Background()

	snap := persist.PersonalSnapshot{Transactions: []core.Transaction{
		{ID: "t1", Type: core.TypeIncome, Amount: core.Money{Cents: 10000}, Date: "2024-03-01", Time: "09:00", Memo: "Paycheck"},
	}}
	if err := personal.Save(ctx, snap); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	msg := amqp.NewRecordSyncMessage(amqp.VariantPersonal, "t1")
	if err := w.HandleMessage(ctx, msg); err != nil {
		t.Fatalf("handle message: %v", err)
	}
	if mirror.personalCalls != 1 || mirror.businessCalls != 0 {
		t.Fatalf("got %d personal and %d business calls, want 1 and 0", mirror.personalCalls, mirror.businessCalls)
	}
	if len(mirror.lastPersonal) != 1 || mirror.lastPersonal[0].ID != "t1" {
		t.Fatalf("mirrored rows %v, want the saved transaction", mirror.lastPersonal)
	}
}

func TestHandleMessageBusiness(t *testing.T) {
	w, _, business, mirror := newTestWorker()
	ctx := context.Background()

	snap := persist.BusinessSnapshot{Transactions: []core.BusinessTransaction{
		{ID: "b1", Date: "2024-03-02", Memo: "Office chairs", Amount: core.Money{Cents: 45000}, Status: core.StatusPending},
	}}
	if err := business.Save(ctx, snap); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	msg := amqp.NewRecordSyncMessage(amqp.VariantBusiness, "b1")
	if err := w.HandleMessage(ctx, msg); err != nil {
		t.Fatalf("handle message: %v", err)
	}
	if mirror.businessCalls != 1 || mirror.personalCalls != 0 {
		t.Fatalf("got %d business and %d personal calls, want 1 and 0", mirror.businessCalls, mirror.personalCalls)
	}
}

func TestHandleMessageUnknownVariant(t *testing.T) {
	w, _, _, mirror := newTestWorker()

	msg := amqp.NewRecordSyncMessage("warehouse", "x")
	if err := w.HandleMessage(context.Background(), msg); err == nil {
		t.Fatal("expected error for unknown variant")
	}
	if mirror.personalCalls != 0 || mirror.businessCalls != 0 {
		t.Fatal("mirror should not be called for unknown variant")
	}
}

func TestSyncNeverSavedMirrorsEmpty(t *testing.T) {
	w, _, _, mirror := newTestWorker()

	if err := w.SyncPersonal(context.Background()); err != nil {
		t.Fatalf("sync personal: %v", err)
	}
	if mirror.personalCalls != 1 {
		t.Fatalf("got %d calls, want 1", mirror.personalCalls)
	}
	if len(mirror.lastPersonal) != 0 {
		t.Fatalf("got %d rows, want empty mirror", len(mirror.lastPersonal))
	}
}

func TestSyncLoadError(t *testing.T) {
	w, personal, _, mirror := newTestWorker()
	personal.LoadErr = errors.New("disk gone")

	if err := w.SyncPersonal(context.Background()); err == nil {
		t.Fatal("expected load error to propagate")
	}
	if mirror.personalCalls != 0 {
		t.Fatal("mirror should not be called when the snapshot cannot load")
	}
}

func TestResyncCoversBothVariants(t *testing.T) {
	w, personal, _, mirror := newTestWorker()
	ctx := context.Background()

	// One variant failing must not stop the other.
	personal.LoadErr = errors.New("disk gone")
	err := w.Resync(ctx)
	if err == nil {
		t.Fatal("expected resync error")
	}
	if mirror.businessCalls != 1 {
		t.Fatalf("business mirrored %d times, want 1", mirror.businessCalls)
	}

	personal.LoadErr = nil
	if err := w.Resync(ctx); err != nil {
		t.Fatalf("resync: %v", err)
	}
	if mirror.personalCalls != 1 || mirror.businessCalls != 2 {
		t.Fatalf("got %d personal and %d business calls, want 1 and 2", mirror.personalCalls, mirror.businessCalls)
	}
}
