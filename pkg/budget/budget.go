package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending ceiling for one expense category in one calendar month.
// At most one budget exists per (CategoryID, Month, Year).
type Budget struct {
	ID         string
	CategoryID string
	Limit      decimal.Decimal
	// Month is 1-12.
	Month     int
	Year      int
	CreatedAt time.Time
}

type NewBudget struct {
	CategoryID string
	Limit      decimal.Decimal
	Month      int
	Year       int
}

func (b Budget) Matches(categoryID string, month, year int) bool {
	return b.CategoryID == categoryID && b.Month == month && b.Year == year
}

// Window returns the first and last day (inclusive) of the given month, both at midnight UTC.
func Window(month, year int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// Find returns the budget for the category and month, if any.
func Find(budgets []Budget, categoryID string, month, year int) (Budget, bool) {
	for _, b := range budgets {
		if b.Matches(categoryID, month, year) {
			return b, true
		}
	}
	return Budget{}, false
}

// FindConflict returns a budget other than excludeID occupying the same category and month.
func FindConflict(budgets []Budget, categoryID string, month, year int, excludeID string) (Budget, bool) {
	for _, b := range budgets {
		if b.ID != excludeID && b.Matches(categoryID, month, year) {
			return b, true
		}
	}
	return Budget{}, false
}

// ForMonth keeps the budgets of one month, in collection order.
func ForMonth(budgets []Budget, month, year int) []Budget {
	out := make([]Budget, 0)
	for _, b := range budgets {
		if b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out
}
