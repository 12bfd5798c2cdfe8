package stats

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrUnknownPeriod = errors.New("Invalid period, expected month, quarter or year")

// Summary is derived from the transaction list and never persisted.
// Balance always equals Income minus Expenses.
type Summary struct {
	Balance  decimal.Decimal
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

type Period string

const (
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// PeriodSeries holds parallel income and expense totals for trailing periods, oldest first.
type PeriodSeries struct {
	Period   Period
	Labels   []string
	Income   []decimal.Decimal
	Expenses []decimal.Decimal
}

type CategoryTotal struct {
	CategoryID string
	Name       string
	Amount     decimal.Decimal
}

// Report is what the reports screen shows at the top: totals plus the savings rate.
type Report struct {
	Summary     Summary
	SavingsRate decimal.Decimal
	Verdict     string
}
