package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the day-precision format used for transaction dates everywhere outside memory.
const DateLayout = "2006-01-02"

// Transaction is a single signed money movement. Positive amounts are income, negative are expenses.
type Transaction struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Category    string
	// Date is a calendar date at midnight UTC.
	Date  time.Time
	Notes string
}

// NewTransaction is the input for creating a transaction. A zero Date means today.
type NewTransaction struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Notes       string
}

func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

func (t Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}

// ParseDate reads a YYYY-MM-DD date. Full RFC 3339 timestamps are accepted and truncated to their date.
func ParseDate(s string) (time.Time, error) {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
