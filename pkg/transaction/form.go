package transaction

import (
	"errors"
	"strings"

	"github.com/eddieyong/financetracker/pkg/category"
	"github.com/eddieyong/financetracker/pkg/money"
)

var (
	ErrEmptyDescription = errors.New("Please enter a description")
	ErrInvalidDate      = errors.New("Please enter a valid date")
)

// Form is a transaction as entered by the user: a positive amount plus the income/expense type
// that decides its sign.
type Form struct {
	Description string        `json:"description"`
	Amount      money.Text    `json:"amount"`
	Category    string        `json:"category"`
	Date        string        `json:"date"`
	Type        category.Kind `json:"type"`
	Notes       string        `json:"notes"`
}

// Validate checks the form and converts it into a NewTransaction. Checks run in the order the
// user sees them and the first failure is returned.
func (f Form) Validate() (NewTransaction, error) {
	if strings.TrimSpace(f.Description) == "" {
		return NewTransaction{}, ErrEmptyDescription
	}

	amount, err := money.Parse(string(f.Amount))
	if err != nil || !amount.IsPositive() {
		return NewTransaction{}, money.ErrInvalidAmount
	}

	if f.Category == "" {
		return NewTransaction{}, category.ErrNoCategory
	}

	if f.Type == category.KindIncome {
		amount = amount.Abs()
	} else {
		amount = amount.Abs().Neg()
	}

	input := NewTransaction{
		Description: f.Description,
		Amount:      amount,
		Category:    f.Category,
		Notes:       f.Notes,
	}
	if f.Date != "" {
		date, err := ParseDate(f.Date)
		if err != nil {
			return NewTransaction{}, ErrInvalidDate
		}
		input.Date = date
	}
	return input, nil
}
