package app

import (
	"github.com/eddieyong/financetracker/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// State
	r.HandleFunc("/api/state", deps.StateHandler.GetState).Methods("GET")
	r.HandleFunc("/api/error", deps.StateHandler.GetError).Methods("GET")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetForMonth).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Settings
	r.HandleFunc("/api/settings", deps.SettingsHandler.Get).Methods("GET")
	r.HandleFunc("/api/settings/currency", deps.SettingsHandler.SetCurrency).Methods("PUT")
	r.HandleFunc("/api/settings/theme/toggle", deps.SettingsHandler.ToggleTheme).Methods("POST")
	r.HandleFunc("/api/settings/colortheme", deps.SettingsHandler.SetColorTheme).Methods("PUT")
	r.HandleFunc("/api/catalog", deps.SettingsHandler.Catalog).Methods("GET")

	// Export
	r.HandleFunc("/api/export", deps.ExportHandler.Download).Methods("GET")
	r.HandleFunc("/api/export", deps.ExportHandler.Export).Methods("POST")

	// Stats
	r.HandleFunc("/api/stats/summary", deps.StatsHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/stats/periods", deps.StatsHandler.GetPeriods).Methods("GET")
	r.HandleFunc("/api/stats/categories", deps.StatsHandler.GetCategories).Methods("GET")

	// Metrics
	r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
}
