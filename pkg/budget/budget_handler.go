package budget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/eddieyong/financetracker/internal/utils"
	"github.com/eddieyong/financetracker/pkg/category"
	"github.com/eddieyong/financetracker/pkg/money"
	"github.com/eddieyong/financetracker/pkg/settings"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Store is the part of the finance store the budget endpoints need.
type Store interface {
	Budgets() []Budget
	Settings() settings.Settings
	AddBudget(ctx context.Context, input NewBudget) (Budget, error)
	UpdateBudget(ctx context.Context, b Budget) (bool, error)
	DeleteBudget(ctx context.Context, id string) bool
	CalculateBudgetProgress(categoryID string, month, year int) Progress
	SetError(ctx context.Context, message string)
}

type BudgetDTO struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Limit        decimal.Decimal `json:"limit"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type ProgressDTO struct {
	Amount              decimal.Decimal `json:"amount"`
	Limit               decimal.Decimal `json:"limit"`
	Percentage          decimal.Decimal `json:"percentage"`
	Remaining           decimal.Decimal `json:"remaining"`
	Status              Status          `json:"status"`
	FormattedAmount     string          `json:"formattedAmount"`
	FormattedLimit      string          `json:"formattedLimit"`
	FormattedRemaining  string          `json:"formattedRemaining"`
	FormattedPercentage string          `json:"formattedPercentage"`
}

type BudgetRowDTO struct {
	BudgetDTO
	Progress ProgressDTO `json:"progress"`
}

type BudgetHandler struct {
	store Store
	clock utils.Clock
}

func NewBudgetHandler(store Store, clock utils.Clock) *BudgetHandler {
	return &BudgetHandler{store: store, clock: clock}
}

// GetForMonth lists the budgets of ?month=&year= (default: the current month) with their progress.
func (handler *BudgetHandler) GetForMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	now := handler.clock.Now().UTC()
	month, err := intParam(r, "month", int(now.Month()))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "Invalid month", http.StatusBadRequest)
		return
	}
	year, err := intParam(r, "year", now.Year())
	if err != nil {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}

	currency := handler.store.Settings().Currency
	budgets := ForMonth(handler.store.Budgets(), month, year)
	rows := make([]BudgetRowDTO, 0, len(budgets))
	for _, b := range budgets {
		progress := handler.store.CalculateBudgetProgress(b.CategoryID, b.Month, b.Year)
		rows = append(rows, BudgetRowDTO{
			BudgetDTO: BudgetToDTO(b),
			Progress:  ProgressToDTO(progress, currency),
		})
	}

	if err := json.NewEncoder(w).Encode(rows); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding new budget")
	w.Header().Set("Content-Type", "application/json")

	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input, err := form.Validate(handler.store.Budgets(), "")
	if err != nil {
		handler.store.SetError(r.Context(), err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.store.AddBudget(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(BudgetToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	id := mux.Vars(r)["id"]

	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	budgets := handler.store.Budgets()
	var existing *Budget
	for i := range budgets {
		if budgets[i].ID == id {
			existing = &budgets[i]
			break
		}
	}
	if existing == nil {
		http.Error(w, "Budget not found", http.StatusNotFound)
		return
	}

	input, err := form.Validate(budgets, id)
	if err != nil {
		handler.store.SetError(r.Context(), err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated := Budget{
		ID:         id,
		CategoryID: input.CategoryID,
		Limit:      input.Limit,
		Month:      input.Month,
		Year:       input.Year,
		CreatedAt:  existing.CreatedAt,
	}
	ok, err := handler.store.UpdateBudget(r.Context(), updated)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if !ok {
		http.Error(w, "Budget not found", http.StatusNotFound)
		return
	}

	if err := json.NewEncoder(w).Encode(BudgetToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !handler.store.DeleteBudget(r.Context(), id) {
		http.Error(w, "Budget not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	if errors.Is(err, ErrBudgetExists) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func BudgetToDTO(b Budget) BudgetDTO {
	return BudgetDTO{
		ID:           b.ID,
		CategoryID:   b.CategoryID,
		CategoryName: category.Budgets().DisplayName(b.CategoryID),
		Limit:        b.Limit,
		Month:        b.Month,
		Year:         b.Year,
		CreatedAt:    b.CreatedAt,
	}
}

func ProgressToDTO(p Progress, currency string) ProgressDTO {
	return ProgressDTO{
		Amount:              p.Amount,
		Limit:               p.Limit,
		Percentage:          p.Percentage,
		Remaining:           p.Remaining,
		Status:              StatusOf(p),
		FormattedAmount:     money.FormatCurrency(p.Amount, currency),
		FormattedLimit:      money.FormatCurrency(p.Limit, currency),
		FormattedRemaining:  money.FormatCurrency(p.Remaining, currency),
		FormattedPercentage: money.FormatPercentage(p.Percentage),
	}
}
