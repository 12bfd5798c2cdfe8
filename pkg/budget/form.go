package budget

import (
	"errors"

	"github.com/eddieyong/financetracker/pkg/category"
	"github.com/eddieyong/financetracker/pkg/money"
)

var (
	ErrInvalidPeriod = errors.New("Please select a valid month and year")
	ErrBudgetExists  = errors.New("A budget for this category and month already exists")
)

// Form is a budget as entered by the user.
type Form struct {
	CategoryID string     `json:"categoryId"`
	Amount     money.Text `json:"amount"`
	Month      int        `json:"month"`
	Year       int        `json:"year"`
}

// Validate checks the form against the existing budgets. editingID is the budget being edited, or
// empty for a new one; it is ignored by the duplicate check.
func (f Form) Validate(existing []Budget, editingID string) (NewBudget, error) {
	if f.CategoryID == "" {
		return NewBudget{}, category.ErrNoCategory
	}

	limit, err := money.Parse(string(f.Amount))
	if err != nil || !limit.IsPositive() {
		return NewBudget{}, money.ErrInvalidAmount
	}

	if f.Month < 1 || f.Month > 12 || f.Year < 1 {
		return NewBudget{}, ErrInvalidPeriod
	}

	if _, exists := FindConflict(existing, f.CategoryID, f.Month, f.Year, editingID); exists {
		return NewBudget{}, ErrBudgetExists
	}

	return NewBudget{
		CategoryID: f.CategoryID,
		Limit:      limit,
		Month:      f.Month,
		Year:       f.Year,
	}, nil
}
