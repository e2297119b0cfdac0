package core

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Scoring weights. Frequency dominates, recency decays by 0.9 per week and
// evenly spaced usage earns the recurrence bonus (personal variant only; the
// business variant folds that weight into recency instead).
const (
	weightFrequency       = 0.4
	weightRecency         = 0.35
	weightRecurring       = 0.25
	weightBusinessRecency = 0.6
	recencyDecay          = 0.9
	recencyPeriodDays     = 7.0
	recurringMinUses      = 3
	recurringMinAvgDays   = 5.0
	recurringMaxVariance  = 5.0
	suggestionBoostFactor = 0.2
	suggestionLimit       = 5
)

// Pattern is a derived view of how a memo has been used historically. It is
// recomputed from the transaction log on every read, never persisted.
type Pattern struct {
	Memo         string  `json:"memo"`
	Frequency    int     `json:"frequency"`
	AvgAmount    Money   `json:"avg_amount"`
	CommonAmount Money   `json:"common_amount"`
	RecencyScore float64 `json:"recency_score"`
	IsRecurring  bool    `json:"is_recurring"`
	Score        float64 `json:"score"`
}

// memoGroup accumulates the uses of one normalized memo in encounter order.
type memoGroup struct {
	memo    string
	amounts []Money
	stamps  []time.Time
}

// TransactionPatterns mines the personal log for memo usage patterns of the
// given type, ranked by score descending. Ties keep group-encounter order.
// Records with an empty memo or a malformed date are left out of the mining.
func TransactionPatterns(txs []Transaction, kind TxType, now time.Time) []Pattern {
	groups := make(map[string]*memoGroup)
	var order []*memoGroup

	for _, t := range txs {
		if t.Type != kind {
			continue
		}
		memo := normalizeMemo(t.Memo)
		if memo == "" {
			continue
		}
		ts, err := t.Timestamp()
		if err != nil {
			continue
		}
		g, ok := groups[memo]
		if !ok {
			g = &memoGroup{memo: memo}
			groups[memo] = g
			order = append(order, g)
		}
		g.amounts = append(g.amounts, t.Amount)
		g.stamps = append(g.stamps, ts)
	}

	patterns := make([]Pattern, 0, len(order))
	for _, g := range order {
		p := g.pattern(now)
		p.IsRecurring = g.isRecurring()
		p.Score = float64(p.Frequency)*weightFrequency + p.RecencyScore*weightRecency
		if p.IsRecurring {
			p.Score += weightRecurring
		}
		patterns = append(patterns, p)
	}
	rankByScore(patterns)
	return patterns
}

// BusinessPatterns mines the business log. The business variant has no
// recurrence detection and weights recency higher instead.
func BusinessPatterns(txs []BusinessTransaction, now time.Time) []Pattern {
	groups := make(map[string]*memoGroup)
	var order []*memoGroup

	for _, t := range txs {
		memo := normalizeMemo(t.Memo)
		if memo == "" {
			continue
		}
		d, err := ParseDate(t.Date)
		if err != nil {
			continue
		}
		g, ok := groups[memo]
		if !ok {
			g = &memoGroup{memo: memo}
			groups[memo] = g
			order = append(order, g)
		}
		g.amounts = append(g.amounts, t.Amount)
		g.stamps = append(g.stamps, d)
	}

	patterns := make([]Pattern, 0, len(order))
	for _, g := range order {
		p := g.pattern(now)
		p.Score = float64(p.Frequency)*weightFrequency + p.RecencyScore*weightBusinessRecency
		patterns = append(patterns, p)
	}
	rankByScore(patterns)
	return patterns
}

// Suggest narrows ranked patterns by a partial memo query and returns the
// top five. An empty query returns the global top five. When boost is set
// (personal variant) matching patterns gain len(query)/len(memo)*0.2,
// rewarding tighter substring matches.
func Suggest(patterns []Pattern, query string, boost bool) []Pattern {
	if strings.TrimSpace(query) == "" {
		return topN(patterns, suggestionLimit)
	}
	q := strings.ToLower(query)
	matched := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		if !strings.Contains(strings.ToLower(p.Memo), q) {
			continue
		}
		if boost {
			p.Score += float64(utf8.RuneCountInString(q)) / float64(utf8.RuneCountInString(p.Memo)) * suggestionBoostFactor
		}
		matched = append(matched, p)
	}
	rankByScore(matched)
	return topN(matched, suggestionLimit)
}

func (g *memoGroup) pattern(now time.Time) Pattern {
	last := g.stamps[0]
	for _, ts := range g.stamps[1:] {
		if ts.After(last) {
			last = ts
		}
	}

	var totalCents int64
	for _, a := range g.amounts {
		totalCents += a.Cents
	}
	n := int64(len(g.amounts))
	avg := Money{Cents: (totalCents + n/2) / n}

	return Pattern{
		Memo:         capitalize(g.memo),
		Frequency:    len(g.amounts),
		AvgAmount:    avg,
		CommonAmount: modeAmount(g.amounts),
		RecencyScore: recencyScore(last, now),
	}
}

// isRecurring reports evenly spaced, not-too-frequent usage: more than two
// occurrences whose chronological gaps average above five days with a
// variance below five.
func (g *memoGroup) isRecurring() bool {
	if len(g.stamps) < recurringMinUses {
		return false
	}
	stamps := append([]time.Time(nil), g.stamps...)
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

	intervals := make([]float64, 0, len(stamps)-1)
	for i := 1; i < len(stamps); i++ {
		intervals = append(intervals, daysBetween(stamps[i-1], stamps[i]))
	}
	var sum float64
	for _, iv := range intervals {
		sum += iv
	}
	avg := sum / float64(len(intervals))
	if avg <= recurringMinAvgDays {
		return false
	}
	var variance float64
	for _, iv := range intervals {
		variance += (iv - avg) * (iv - avg)
	}
	variance /= float64(len(intervals))
	return variance < recurringMaxVariance
}

// recencyScore is 0.9^(days/7): 1.0 for a memo used today, decaying with
// each week of disuse.
func recencyScore(last, now time.Time) float64 {
	days := daysBetween(last, now)
	if days < 0 {
		days = 0
	}
	return math.Pow(recencyDecay, days/recencyPeriodDays)
}

// daysBetween counts whole days from a to b.
func daysBetween(a, b time.Time) float64 {
	return math.Floor(b.Sub(a).Hours() / 24)
}

// modeAmount picks the most frequent amount; ties go to the amount seen
// first, keeping the result stable across runs.
func modeAmount(amounts []Money) Money {
	counts := make(map[int64]int, len(amounts))
	for _, a := range amounts {
		counts[a.Cents]++
	}
	best := amounts[0]
	bestCount := 0
	seen := make(map[int64]struct{}, len(amounts))
	for _, a := range amounts {
		if _, ok := seen[a.Cents]; ok {
			continue
		}
		seen[a.Cents] = struct{}{}
		if counts[a.Cents] > bestCount {
			best = a
			bestCount = counts[a.Cents]
		}
	}
	return best
}

func normalizeMemo(memo string) string {
	return strings.ToLower(strings.TrimSpace(memo))
}

// capitalize upper-cases the first rune for display ("paycheck" → "Paycheck").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}

func rankByScore(patterns []Pattern) {
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Score > patterns[j].Score
	})
}

func topN(patterns []Pattern, n int) []Pattern {
	if len(patterns) > n {
		patterns = patterns[:n]
	}
	return append([]Pattern(nil), patterns...)
}
