package finance

import (
	"encoding/json"
	"net/http"

	"github.com/eddieyong/financetracker/pkg/budget"
	"github.com/eddieyong/financetracker/pkg/money"
	"github.com/eddieyong/financetracker/pkg/settings"
	"github.com/eddieyong/financetracker/pkg/stats"
	"github.com/eddieyong/financetracker/pkg/transaction"
	"github.com/shopspring/decimal"
)

type SummaryDTO struct {
	Balance           decimal.Decimal `json:"balance"`
	Income            decimal.Decimal `json:"income"`
	Expenses          decimal.Decimal `json:"expenses"`
	FormattedBalance  string          `json:"formattedBalance"`
	FormattedIncome   string          `json:"formattedIncome"`
	FormattedExpenses string          `json:"formattedExpenses"`
	BalanceClass      string          `json:"balanceClass"`
}

type StateDTO struct {
	Transactions []transaction.TransactionDTO `json:"transactions"`
	Budgets      []budget.BudgetDTO           `json:"budgets"`
	Summary      SummaryDTO                   `json:"summary"`
	Settings     settings.SettingsDTO         `json:"settings"`
	Error        string                       `json:"error"`
}

type ErrorDTO struct {
	Error string `json:"error"`
}

type StateHandler struct {
	store Store
}

func NewStateHandler(store Store) *StateHandler {
	return &StateHandler{store: store}
}

func (handler *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respond(w, SnapshotToDTO(handler.store.Snapshot()))
}

// GetError returns the transient error message, empty when none is showing.
func (handler *StateHandler) GetError(w http.ResponseWriter, r *http.Request) {
	respond(w, ErrorDTO{Error: handler.store.Error()})
}

func respond(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func SnapshotToDTO(s Snapshot) StateDTO {
	currency := s.Settings.Currency
	txs := make([]transaction.TransactionDTO, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		txs = append(txs, transaction.TransactionToDTO(t, currency))
	}
	budgets := make([]budget.BudgetDTO, 0, len(s.Budgets))
	for _, b := range s.Budgets {
		budgets = append(budgets, budget.BudgetToDTO(b))
	}
	return StateDTO{
		Transactions: txs,
		Budgets:      budgets,
		Summary:      SummaryToDTO(s.Summary, currency),
		Settings:     settings.SettingsToDTO(s.Settings),
		Error:        s.Error,
	}
}

func SummaryToDTO(s stats.Summary, currency string) SummaryDTO {
	return SummaryDTO{
		Balance:           s.Balance,
		Income:            s.Income,
		Expenses:          s.Expenses,
		FormattedBalance:  money.FormatCurrency(s.Balance, currency),
		FormattedIncome:   money.FormatCurrency(s.Income, currency),
		FormattedExpenses: money.FormatCurrency(s.Expenses, currency),
		BalanceClass:      money.ClassOf(s.Balance),
	}
}
