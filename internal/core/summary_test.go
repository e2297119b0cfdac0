package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Type: TypeIncome, Amount: Money{Cents: 60000}},
		{ID: "2", Type: TypeIncome, Amount: Money{Cents: 40000}},
		{ID: "3", Type: TypeMaaser, Amount: Money{Cents: 8000}},
	}
	s := Summarize(txs)
	if s.TotalIncome.Cents != 100000 {
		t.Fatalf("income = %d, want 100000", s.TotalIncome.Cents)
	}
	if s.TotalMaaser.Cents != 8000 {
		t.Fatalf("maaser = %d, want 8000", s.TotalMaaser.Cents)
	}
	// 10% of 1000 minus 80 given.
	if !s.MaaserDue.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("due = %s, want 20", s.MaaserDue)
	}
}

func TestSummarizeOverGivenGoesNegative(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Type: TypeIncome, Amount: Money{Cents: 10000}},
		{ID: "2", Type: TypeMaaser, Amount: Money{Cents: 5000}},
	}
	s := Summarize(txs)
	if !s.MaaserDue.Equal(decimal.NewFromInt(-40)) {
		t.Fatalf("due = %s, want -40", s.MaaserDue)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalIncome.Cents != 0 || s.TotalMaaser.Cents != 0 || !s.MaaserDue.IsZero() {
		t.Fatalf("empty ledger summary not zero: %+v", s)
	}
}

func TestTotalPending(t *testing.T) {
	txs := []BusinessTransaction{
		{ID: "1", Amount: Money{Cents: 4200}, Status: StatusPending},
		{ID: "2", Amount: Money{Cents: 900}, Status: StatusReimbursed},
		{ID: "3", Amount: Money{Cents: 100}, Status: StatusPending},
	}
	if got := TotalPending(txs); got.Cents != 4300 {
		t.Fatalf("pending = %d, want 4300", got.Cents)
	}
}

func TestMonthlyChart(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Type: TypeIncome, Amount: Money{Cents: 10000}, Date: "2024-01-15"},
		{ID: "2", Type: TypeMaaser, Amount: Money{Cents: 1000}, Date: "2024-01-20"},
		{ID: "3", Type: TypeIncome, Amount: Money{Cents: 5000}, Date: "2023-12-31"},
		{ID: "4", Type: TypeIncome, Amount: Money{Cents: 2000}, Date: "2024-02-01"},
		{ID: "5", Type: TypeIncome, Amount: Money{Cents: 9999}, Date: "bad-date"},
	}
	got := MonthlyChart(txs)
	if len(got) != 3 {
		t.Fatalf("expected 3 buckets, got %d: %+v", len(got), got)
	}
	if got[0].Month != "Dec 2023" || got[1].Month != "Jan 2024" || got[2].Month != "Feb 2024" {
		t.Fatalf("months out of order: %+v", got)
	}
	if got[1].Income.Cents != 10000 || got[1].Maaser.Cents != 1000 {
		t.Fatalf("january bucket wrong: %+v", got[1])
	}
}

func TestMonthlyChartEmpty(t *testing.T) {
	if got := MonthlyChart(nil); len(got) != 0 {
		t.Fatalf("expected no buckets, got %+v", got)
	}
}
