package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/eddieyong/financetracker/pkg/budget"
	"github.com/eddieyong/financetracker/pkg/category"
	"github.com/eddieyong/financetracker/pkg/transaction"
	"github.com/shopspring/decimal"
)

const breakdownSize = 7

var hundred = decimal.NewFromInt(100)

// CalculateSummary totals positive amounts as income and absolute negative amounts as expenses.
func CalculateSummary(txs []transaction.Transaction) Summary {
	income, expenses := decimal.Zero, decimal.Zero
	for _, t := range txs {
		switch {
		case t.IsIncome():
			income = income.Add(t.Amount)
		case t.IsExpense():
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return Summary{
		Balance:  income.Sub(expenses),
		Income:   income,
		Expenses: expenses,
	}
}

// CalculateBudgetProgress sums the category's expenses inside the budget's month and compares them to
// its limit. Without a budget, or with a zero limit, the result is all zeros.
func CalculateBudgetProgress(budgets []budget.Budget, txs []transaction.Transaction, categoryID string, month, year int) budget.Progress {
	b, ok := budget.Find(budgets, categoryID, month, year)
	if !ok || !b.Limit.IsPositive() {
		return budget.Progress{
			Amount:     decimal.Zero,
			Limit:      decimal.Zero,
			Percentage: decimal.Zero,
			Remaining:  decimal.Zero,
		}
	}

	first, last := budget.Window(month, year)
	spent := decimal.Zero
	for _, t := range txs {
		if t.Category != categoryID || !t.IsExpense() {
			continue
		}
		if t.Date.Before(first) || t.Date.After(last) {
			continue
		}
		spent = spent.Add(t.Amount.Abs())
	}

	percentage := decimal.Min(spent.Div(b.Limit).Mul(hundred), hundred)
	remaining := decimal.Max(b.Limit.Sub(spent), decimal.Zero)

	return budget.Progress{
		Amount:     spent,
		Limit:      b.Limit,
		Percentage: percentage,
		Remaining:  remaining,
	}
}

// GroupByPeriod buckets income and expenses into the trailing periods ending at now:
// 6 months, 4 quarters or 3 years.
//
// Monthly buckets compare month numbers modulo 12 and only look at the current and previous
// calendar year, so a transaction from the same month a year ago lands in the current bucket.
func GroupByPeriod(txs []transaction.Transaction, period Period, now time.Time) (PeriodSeries, error) {
	// transaction dates are UTC calendar dates
	now = now.UTC()
	switch period {
	case PeriodMonth:
		return groupByMonth(txs, now), nil
	case PeriodQuarter:
		return groupByQuarter(txs, now), nil
	case PeriodYear:
		return groupByYear(txs, now), nil
	default:
		return PeriodSeries{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
}

func groupByMonth(txs []transaction.Transaction, now time.Time) PeriodSeries {
	const size = 6
	series := newSeries(PeriodMonth, size)

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < size; i++ {
		series.Labels[size-1-i] = firstOfMonth.AddDate(0, -i, 0).Format("Jan")
	}

	currentMonth := int(now.Month()) - 1
	for _, t := range txs {
		monthDiff := (currentMonth - (int(t.Date.Month()) - 1) + 12) % 12
		if monthDiff < size && t.Date.Year() >= now.Year()-1 {
			series.add(size-1-monthDiff, t)
		}
	}
	return series
}

func groupByQuarter(txs []transaction.Transaction, now time.Time) PeriodSeries {
	const size = 4
	series := newSeries(PeriodQuarter, size)

	current := quarterIndex(now)
	for i := 0; i < size; i++ {
		q := current - i
		series.Labels[size-1-i] = fmt.Sprintf("Q%d %d", q%4+1, q/4)
	}

	for _, t := range txs {
		diff := current - quarterIndex(t.Date)
		if diff >= 0 && diff < size {
			series.add(size-1-diff, t)
		}
	}
	return series
}

func groupByYear(txs []transaction.Transaction, now time.Time) PeriodSeries {
	const size = 3
	series := newSeries(PeriodYear, size)

	for i := 0; i < size; i++ {
		series.Labels[size-1-i] = fmt.Sprintf("%d", now.Year()-i)
	}

	for _, t := range txs {
		diff := now.Year() - t.Date.Year()
		if diff >= 0 && diff < size {
			series.add(size-1-diff, t)
		}
	}
	return series
}

// quarterIndex counts quarters since year 0.
func quarterIndex(t time.Time) int {
	return t.Year()*4 + (int(t.Month())-1)/3
}

func newSeries(period Period, size int) PeriodSeries {
	s := PeriodSeries{
		Period:   period,
		Labels:   make([]string, size),
		Income:   make([]decimal.Decimal, size),
		Expenses: make([]decimal.Decimal, size),
	}
	for i := 0; i < size; i++ {
		s.Income[i] = decimal.Zero
		s.Expenses[i] = decimal.Zero
	}
	return s
}

func (s PeriodSeries) add(index int, t transaction.Transaction) {
	if t.IsIncome() {
		s.Income[index] = s.Income[index].Add(t.Amount)
	} else {
		s.Expenses[index] = s.Expenses[index].Add(t.Amount.Abs())
	}
}

// SavingsRate is the share of income not spent, in percent. It is 0 when there is no income.
func SavingsRate(txs []transaction.Transaction) decimal.Decimal {
	summary := CalculateSummary(txs)
	if summary.Income.IsZero() {
		return decimal.Zero
	}
	return summary.Income.Sub(summary.Expenses).Div(summary.Income).Mul(hundred)
}

func SavingsVerdict(rate decimal.Decimal) string {
	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromInt(20)):
		return "Excellent! You're saving a significant portion of your income."
	case rate.GreaterThanOrEqual(decimal.NewFromInt(10)):
		return "Good job! You're on the right track."
	case rate.GreaterThanOrEqual(decimal.Zero):
		return "You're saving, but try to increase your rate."
	default:
		return "You're spending more than you earn. Review your expenses."
	}
}

// CategoryBreakdown sums expenses per category and returns the seven largest, largest first.
// Categories with equal totals keep the order in which they first appear. The rest are dropped.
func CategoryBreakdown(txs []transaction.Transaction, catalog category.Catalog) []CategoryTotal {
	var totals []CategoryTotal
	index := make(map[string]int)
	for _, t := range txs {
		if !t.IsExpense() {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(totals)
			index[t.Category] = i
			totals = append(totals, CategoryTotal{
				CategoryID: t.Category,
				Name:       catalog.DisplayName(t.Category),
				Amount:     decimal.Zero,
			})
		}
		totals[i].Amount = totals[i].Amount.Add(t.Amount.Abs())
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount.GreaterThan(totals[j].Amount)
	})
	if len(totals) > breakdownSize {
		totals = totals[:breakdownSize]
	}
	if totals == nil {
		totals = []CategoryTotal{}
	}
	return totals
}
