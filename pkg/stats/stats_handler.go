package stats

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eddieyong/financetracker/pkg/money"
	"github.com/eddieyong/financetracker/pkg/settings"
	"github.com/shopspring/decimal"
)

// SettingsSource provides the display currency.
type SettingsSource interface {
	Settings() settings.Settings
}

type ReportDTO struct {
	Balance              decimal.Decimal `json:"balance"`
	Income               decimal.Decimal `json:"income"`
	Expenses             decimal.Decimal `json:"expenses"`
	SavingsRate          decimal.Decimal `json:"savingsRate"`
	FormattedBalance     string          `json:"formattedBalance"`
	FormattedIncome      string          `json:"formattedIncome"`
	FormattedExpenses    string          `json:"formattedExpenses"`
	FormattedSavingsRate string          `json:"formattedSavingsRate"`
	SavingsRateClass     string          `json:"savingsRateClass"`
	Verdict              string          `json:"verdict"`
}

type PeriodSeriesDTO struct {
	Period   Period            `json:"period"`
	Labels   []string          `json:"labels"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
}

type CategoryTotalDTO struct {
	CategoryID      string          `json:"categoryId"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	FormattedAmount string          `json:"formattedAmount"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
	settings         SettingsSource
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer, settings SettingsSource) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer, settings}
}

func (handler *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	report := handler.statsService.GetReport()
	if err := json.NewEncoder(w).Encode(ReportToDTO(report, handler.settings.Settings().Currency)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *StatsHandler) GetPeriods(w http.ResponseWriter, r *http.Request) {
	period := Period(r.URL.Query().Get("period"))
	if period == "" {
		period = PeriodMonth
	}
	series, err := handler.statsService.GetPeriods(period)
	if err != nil {
		if errors.Is(err, ErrUnknownPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := handler.csvStatsRenderer.RenderPeriods(series)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	dto := PeriodSeriesDTO{
		Period:   series.Period,
		Labels:   series.Labels,
		Income:   series.Income,
		Expenses: series.Expenses,
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *StatsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	currency := handler.settings.Settings().Currency
	totals := handler.statsService.GetCategoryBreakdown()

	dtos := make([]CategoryTotalDTO, 0, len(totals))
	for _, t := range totals {
		dtos = append(dtos, CategoryTotalDTO{
			CategoryID:      t.CategoryID,
			Name:            t.Name,
			Amount:          t.Amount,
			FormattedAmount: money.FormatCurrency(t.Amount, currency),
		})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func ReportToDTO(report Report, currency string) ReportDTO {
	return ReportDTO{
		Balance:              report.Summary.Balance,
		Income:               report.Summary.Income,
		Expenses:             report.Summary.Expenses,
		SavingsRate:          report.SavingsRate,
		FormattedBalance:     money.FormatCurrency(report.Summary.Balance, currency),
		FormattedIncome:      money.FormatCurrency(report.Summary.Income, currency),
		FormattedExpenses:    money.FormatCurrency(report.Summary.Expenses, currency),
		FormattedSavingsRate: money.FormatPercentage(report.SavingsRate),
		SavingsRateClass:     money.ClassOf(report.SavingsRate),
		Verdict:              report.Verdict,
	}
}
