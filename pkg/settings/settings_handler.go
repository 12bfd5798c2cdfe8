package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/eddieyong/financetracker/pkg/category"
	"github.com/eddieyong/financetracker/pkg/money"
	log "github.com/sirupsen/logrus"
)

// Store is the part of the finance store the settings endpoints need.
type Store interface {
	Settings() Settings
	SetCurrency(ctx context.Context, code string)
	ToggleTheme(ctx context.Context)
	SetColorTheme(ctx context.Context, id string)
	SetError(ctx context.Context, message string)
}

type SettingsDTO struct {
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
	Theme          Theme  `json:"theme"`
	ColorTheme     string `json:"colorTheme"`
}

type CatalogDTO struct {
	TransactionCategories category.Catalog `json:"transactionCategories"`
	BudgetCategories      category.Catalog `json:"budgetCategories"`
	Currencies            []Currency       `json:"currencies"`
	ColorThemes           []ColorTheme     `json:"colorThemes"`
}

type SettingsHandler struct {
	store Store
}

func NewSettingsHandler(store Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

func (handler *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	handler.respond(w, handler.store.Settings())
}

func (handler *SettingsHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	code := strings.ToUpper(strings.TrimSpace(body.Currency))
	if code == "" {
		handler.store.SetError(r.Context(), ErrNoCurrency.Error())
		http.Error(w, ErrNoCurrency.Error(), http.StatusBadRequest)
		return
	}

	log.Debugf("Setting currency to %s", code)
	handler.store.SetCurrency(r.Context(), code)
	handler.respond(w, handler.store.Settings())
}

func (handler *SettingsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	handler.store.ToggleTheme(r.Context())
	handler.respond(w, handler.store.Settings())
}

func (handler *SettingsHandler) SetColorTheme(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ColorTheme string `json:"colorTheme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.ColorTheme) == "" {
		handler.store.SetError(r.Context(), ErrNoColorTheme.Error())
		http.Error(w, ErrNoColorTheme.Error(), http.StatusBadRequest)
		return
	}

	handler.store.SetColorTheme(r.Context(), body.ColorTheme)
	handler.respond(w, handler.store.Settings())
}

func (handler *SettingsHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	catalog := CatalogDTO{
		TransactionCategories: category.Transactions(),
		BudgetCategories:      category.Budgets(),
		Currencies:            Currencies(),
		ColorThemes:           ColorThemes(),
	}
	if err := json.NewEncoder(w).Encode(catalog); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *SettingsHandler) respond(w http.ResponseWriter, s Settings) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(SettingsToDTO(s)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func SettingsToDTO(s Settings) SettingsDTO {
	return SettingsDTO{
		Currency:       s.Currency,
		CurrencySymbol: money.Symbol(s.Currency),
		Theme:          s.Theme,
		ColorTheme:     s.ColorTheme,
	}
}
