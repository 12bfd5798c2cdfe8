package budget

import "github.com/shopspring/decimal"

// Progress is how much of a budget has been spent. Percentage is capped at 100 and Remaining never
// goes below zero. A month without a budget has an all-zero Progress.
type Progress struct {
	Amount     decimal.Decimal
	Limit      decimal.Decimal
	Percentage decimal.Decimal
	Remaining  decimal.Decimal
}

type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

var (
	warningThreshold = decimal.NewFromInt(75)
	hundred          = decimal.NewFromInt(100)
)

// StatusOf bands a progress by the uncapped share of the limit spent:
// over past 100%, warning past 75%, ok otherwise.
func StatusOf(p Progress) Status {
	if !p.Limit.IsPositive() {
		return StatusOK
	}
	spent := p.Amount.Div(p.Limit).Mul(hundred)
	switch {
	case spent.GreaterThan(hundred):
		return StatusOver
	case spent.GreaterThan(warningThreshold):
		return StatusWarning
	default:
		return StatusOK
	}
}
