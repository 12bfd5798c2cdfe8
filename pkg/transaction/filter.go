package transaction

import (
	"strings"
)

type FilterKind string

const (
	FilterAll     FilterKind = "all"
	FilterIncome  FilterKind = "income"
	FilterExpense FilterKind = "expense"
)

// Filter returns the transactions matching kind and containing search (case-insensitive) in their
// description, category or notes. Zero amounts pass both kind filters. Order is preserved.
func Filter(txs []Transaction, kind FilterKind, search string) []Transaction {
	term := strings.ToLower(strings.TrimSpace(search))

	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if kind == FilterIncome && t.IsExpense() {
			continue
		}
		if kind == FilterExpense && t.IsIncome() {
			continue
		}
		if term != "" && !matches(t, term) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matches(t Transaction, term string) bool {
	return strings.Contains(strings.ToLower(t.Description), term) ||
		strings.Contains(strings.ToLower(t.Category), term) ||
		strings.Contains(strings.ToLower(t.Notes), term)
}
