package stats

import (
	"github.com/eddieyong/financetracker/internal/utils"
	"github.com/eddieyong/financetracker/pkg/category"
	"github.com/eddieyong/financetracker/pkg/transaction"
	log "github.com/sirupsen/logrus"
)

// TransactionSource provides the transactions to report on.
type TransactionSource interface {
	Transactions() []transaction.Transaction
}

type StatsService interface {
	GetReport() Report
	GetPeriods(period Period) (PeriodSeries, error)
	GetCategoryBreakdown() []CategoryTotal
}

type StatsServiceImpl struct {
	source  TransactionSource
	catalog category.Catalog
	clock   utils.Clock
}

func NewStatsServiceImpl(source TransactionSource, clock utils.Clock) *StatsServiceImpl {
	return &StatsServiceImpl{
		source:  source,
		catalog: category.Transactions(),
		clock:   clock,
	}
}

func (s *StatsServiceImpl) GetReport() Report {
	txs := s.source.Transactions()
	rate := SavingsRate(txs)
	return Report{
		Summary:     CalculateSummary(txs),
		SavingsRate: rate,
		Verdict:     SavingsVerdict(rate),
	}
}

func (s *StatsServiceImpl) GetPeriods(period Period) (PeriodSeries, error) {
	txs := s.source.Transactions()
	log.Tracef("Grouping %d transactions by %s", len(txs), period)
	return GroupByPeriod(txs, period, s.clock.Now())
}

func (s *StatsServiceImpl) GetCategoryBreakdown() []CategoryTotal {
	return CategoryBreakdown(s.source.Transactions(), s.catalog)
}
