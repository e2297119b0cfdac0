package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Ten percent of income is owed as maaser.
var maaserRate = decimal.New(1, -1)

// Summary aggregates the personal ledger. Due is 10% of total income minus
// maaser already given; negative means over-given and is not clamped.
type Summary struct {
	TotalIncome Money           `json:"total_income"`
	TotalMaaser Money           `json:"total_maaser"`
	MaaserDue   decimal.Decimal `json:"maaser_due"`
}

// MonthBucket is one month of the analytics chart series.
type MonthBucket struct {
	Month  string `json:"month"`
	Income Money  `json:"income"`
	Maaser Money  `json:"maaser"`
}

// Summarize computes the ledger totals and the maaser due.
func Summarize(txs []Transaction) Summary {
	var income, maaser int64
	for _, t := range txs {
		switch t.Type {
		case TypeIncome:
			income += t.Amount.Cents
		case TypeMaaser:
			maaser += t.Amount.Cents
		}
	}
	due := decimal.New(income, -2).Mul(maaserRate).Sub(decimal.New(maaser, -2))
	return Summary{
		TotalIncome: Money{Cents: income},
		TotalMaaser: Money{Cents: maaser},
		MaaserDue:   due,
	}
}

// TotalPending sums the business entries still awaiting reimbursement.
func TotalPending(txs []BusinessTransaction) Money {
	var cents int64
	for _, t := range txs {
		if t.Status == StatusPending {
			cents += t.Amount.Cents
		}
	}
	return Money{Cents: cents}
}

// MonthlyChart buckets the personal ledger by calendar month, summing each
// type, and returns the buckets in chronological order. Entries with a
// malformed date are excluded.
func MonthlyChart(txs []Transaction) []MonthBucket {
	type bucket struct {
		month  time.Time
		income int64
		maaser int64
	}
	buckets := make(map[time.Time]*bucket)
	for _, t := range txs {
		d, err := ParseDate(t.Date)
		if err != nil {
			continue
		}
		key := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{month: key}
			buckets[key] = b
		}
		switch t.Type {
		case TypeIncome:
			b.income += t.Amount.Cents
		case TypeMaaser:
			b.maaser += t.Amount.Cents
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].month.Before(ordered[j].month) })

	out := make([]MonthBucket, 0, len(ordered))
	for _, b := range ordered {
		out = append(out, MonthBucket{
			Month:  b.month.Format("Jan 2006"),
			Income: Money{Cents: b.income},
			Maaser: Money{Cents: b.maaser},
		})
	}
	return out
}
