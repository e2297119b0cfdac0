package core

import "strings"

// Sentinel value meaning "no constraint" for the type, status and account
// filters. Empty strings on the other criteria mean the same.
const FilterAll = "all"

// AccountCash selects transactions with no account reference.
const AccountCash = "cash"

// TransactionFilter holds the personal list criteria. All fields are raw
// user input: amounts that fail to parse are silently treated as unset.
type TransactionFilter struct {
	Search    string
	Type      string
	StartDate string
	EndDate   string
	MinAmount string
	MaxAmount string
	AccountID string
}

// BusinessFilter holds the business list criteria.
type BusinessFilter struct {
	Search string
	Status string
}

// FilterTransactions applies the criteria conjunctively and returns a new
// slice preserving the input order. The input is never mutated.
func FilterTransactions(txs []Transaction, f TransactionFilter) []Transaction {
	out := make([]Transaction, 0, len(txs))
	minAmount, hasMin := parseOptionalAmount(f.MinAmount)
	maxAmount, hasMax := parseOptionalAmount(f.MaxAmount)
	search := strings.ToLower(f.Search)

	for _, t := range txs {
		if search != "" && !matchesSearch(t.Memo, t.Amount, search) {
			continue
		}
		if f.Type != "" && f.Type != FilterAll && string(t.Type) != f.Type {
			continue
		}
		// ISO dates compare correctly as strings, inclusive on both ends.
		if f.StartDate != "" && t.Date < f.StartDate {
			continue
		}
		if f.EndDate != "" && t.Date > f.EndDate {
			continue
		}
		if hasMin && t.Amount.Cents < minAmount.Cents {
			continue
		}
		if hasMax && t.Amount.Cents > maxAmount.Cents {
			continue
		}
		if !matchesAccount(t.AccountID, f.AccountID) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterBusinessTransactions applies search and status criteria, preserving
// input order.
func FilterBusinessTransactions(txs []BusinessTransaction, f BusinessFilter) []BusinessTransaction {
	out := make([]BusinessTransaction, 0, len(txs))
	search := strings.ToLower(f.Search)

	for _, t := range txs {
		if search != "" && !matchesSearch(t.Memo, t.Amount, search) {
			continue
		}
		if f.Status != "" && f.Status != FilterAll && string(t.Status) != f.Status {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchesSearch checks the lowered query against the memo (case-insensitive)
// and against the canonical amount string.
func matchesSearch(memo string, amount Money, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(memo), loweredQuery) {
		return true
	}
	return strings.Contains(amount.String(), loweredQuery)
}

func matchesAccount(accountID *string, filter string) bool {
	switch filter {
	case "", FilterAll:
		return true
	case AccountCash:
		return accountID == nil
	default:
		return accountID != nil && *accountID == filter
	}
}

func parseOptionalAmount(s string) (Money, bool) {
	if strings.TrimSpace(s) == "" {
		return Money{}, false
	}
	m, err := ParseAmount(s)
	if err != nil {
		// Unparseable bounds are skipped, not surfaced.
		return Money{}, false
	}
	return m, true
}
