package stats

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderPeriods(series PeriodSeries) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderPeriods writes one row per period plus a closing total row.
func (t *CsvStatsRendererImpl) RenderPeriods(series PeriodSeries) (string, error) {
	data := make([][]string, 0, len(series.Labels)+2)
	data = append(data, []string{"Period", "Income", "Expenses", "Net"})
	for i, label := range series.Labels {
		data = append(data, []string{
			label,
			series.Income[i].StringFixed(2),
			series.Expenses[i].StringFixed(2),
			series.Income[i].Sub(series.Expenses[i]).StringFixed(2),
		})
	}
	income, expenses := sum(series.Income), sum(series.Expenses)
	data = append(data, []string{"Total", income.StringFixed(2), expenses.StringFixed(2), income.Sub(expenses).StringFixed(2)})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
