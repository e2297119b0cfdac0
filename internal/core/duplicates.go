package core

import (
	"sort"
	"time"
)

const duplicateWindow = 24 * time.Hour

// DetectDuplicates flags personal transactions that look like accidental
// double entries: equal amount and timestamps no more than a day apart.
// Entries whose id is in verified have been acknowledged and are excluded
// from the scan entirely.
//
// Every unordered pair is examined, so the returned id set does not depend
// on the input ordering. Pairs with a malformed date or time are skipped,
// never fatal.
func DetectDuplicates(txs []Transaction, verified []string) []string {
	verifiedSet := make(map[string]struct{}, len(verified))
	for _, id := range verified {
		verifiedSet[id] = struct{}{}
	}

	candidates := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if _, ok := verifiedSet[t.ID]; !ok {
			candidates = append(candidates, t)
		}
	}

	flagged := make(map[string]struct{})
	for i, a := range candidates {
		for _, b := range candidates[i+1:] {
			if a.ID == b.ID {
				continue
			}
			if !a.Amount.Equal(b.Amount) {
				continue
			}
			ta, err := a.Timestamp()
			if err != nil {
				continue
			}
			tb, err := b.Timestamp()
			if err != nil {
				continue
			}
			if within(ta, tb, duplicateWindow) {
				flagged[a.ID] = struct{}{}
				flagged[b.ID] = struct{}{}
			}
		}
	}
	return sortedIDs(flagged)
}

// DetectBusinessDuplicates flags business entries with equal amount, equal
// memo and dates no more than a day apart. Unlike the personal variant there
// is no verified exclusion list; the divergence is inherited behavior, kept
// deliberately.
func DetectBusinessDuplicates(txs []BusinessTransaction) []string {
	flagged := make(map[string]struct{})
	for i, a := range txs {
		for _, b := range txs[i+1:] {
			if a.ID == b.ID {
				continue
			}
			if !a.Amount.Equal(b.Amount) || a.Memo != b.Memo {
				continue
			}
			da, err := ParseDate(a.Date)
			if err != nil {
				continue
			}
			db, err := ParseDate(b.Date)
			if err != nil {
				continue
			}
			if within(da, db, duplicateWindow) {
				flagged[a.ID] = struct{}{}
				flagged[b.ID] = struct{}{}
			}
		}
	}
	return sortedIDs(flagged)
}

func within(a, b time.Time, window time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= window
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
