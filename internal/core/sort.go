package core

import "sort"

// SortKey selects the field a listing is ordered by.
type SortKey string

// SortDir selects ascending or descending order.
type SortDir string

// Sort keys. An unknown key falls back to SortByDate.
const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
	SortByType   SortKey = "type"
	SortByStatus SortKey = "status"

	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// SortTransactions returns a new slice ordered by the selected key. The sort
// is stable: entries with equal keys keep their original relative order in
// both directions, so flipping the order reverses the sequence exactly only
// for unique keys.
func SortTransactions(txs []Transaction, sortBy SortKey, order SortDir) []Transaction {
	out := append([]Transaction(nil), txs...)
	desc := order == SortDesc

	var less func(a, b Transaction) bool
	switch sortBy {
	case SortByAmount:
		less = func(a, b Transaction) bool { return a.Amount.Cents < b.Amount.Cents }
	case SortByType:
		less = func(a, b Transaction) bool { return a.Type < b.Type }
	default:
		// Date key with time-of-day as tiebreaker.
		less = func(a, b Transaction) bool {
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return a.Time < b.Time
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// SortBusinessTransactions returns a new slice ordered by the selected key.
func SortBusinessTransactions(txs []BusinessTransaction, sortBy SortKey, order SortDir) []BusinessTransaction {
	out := append([]BusinessTransaction(nil), txs...)
	desc := order == SortDesc

	var less func(a, b BusinessTransaction) bool
	switch sortBy {
	case SortByAmount:
		less = func(a, b BusinessTransaction) bool { return a.Amount.Cents < b.Amount.Cents }
	case SortByStatus:
		less = func(a, b BusinessTransaction) bool { return a.Status < b.Status }
	default:
		less = func(a, b BusinessTransaction) bool { return a.Date < b.Date }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
