package transaction

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/eddieyong/financetracker/pkg/category"
	"github.com/eddieyong/financetracker/pkg/money"
	"github.com/eddieyong/financetracker/pkg/settings"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Store is the part of the finance store the transaction endpoints need.
type Store interface {
	Transactions() []Transaction
	Settings() settings.Settings
	AddTransaction(ctx context.Context, input NewTransaction) Transaction
	DeleteTransaction(ctx context.Context, id string) bool
	SetError(ctx context.Context, message string)
}

type TransactionDTO struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	CategoryName    string          `json:"categoryName"`
	Date            string          `json:"date"`
	Notes           string          `json:"notes,omitempty"`
	FormattedAmount string          `json:"formattedAmount"`
	AmountClass     string          `json:"amountClass"`
}

type TransactionHandler struct {
	store Store
}

func NewTransactionHandler(store Store) *TransactionHandler {
	return &TransactionHandler{store: store}
}

func (handler *TransactionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	kind := FilterKind(r.URL.Query().Get("filter"))
	switch kind {
	case "":
		kind = FilterAll
	case FilterAll, FilterIncome, FilterExpense:
	default:
		http.Error(w, "Invalid filter, expected all, income or expense", http.StatusBadRequest)
		return
	}

	currency := handler.store.Settings().Currency
	filtered := Filter(handler.store.Transactions(), kind, r.URL.Query().Get("search"))
	dtos := make([]TransactionDTO, 0, len(filtered))
	for _, t := range filtered {
		dtos = append(dtos, TransactionToDTO(t, currency))
	}

	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Adding new transaction")
	w.Header().Set("Content-Type", "application/json")

	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input, err := form.Validate()
	if err != nil {
		handler.store.SetError(r.Context(), err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created := handler.store.AddTransaction(r.Context(), input)

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(TransactionToDTO(created, handler.store.Settings().Currency)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !handler.store.DeleteTransaction(r.Context(), id) {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func TransactionToDTO(t Transaction, currency string) TransactionDTO {
	return TransactionDTO{
		ID:              t.ID,
		Description:     t.Description,
		Amount:          t.Amount,
		Category:        t.Category,
		CategoryName:    category.Transactions().DisplayName(t.Category),
		Date:            t.DateString(),
		Notes:           t.Notes,
		FormattedAmount: money.FormatCurrency(t.Amount, currency),
		AmountClass:     money.ClassOf(t.Amount),
	}
}

