package export

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/eddieyong/financetracker/internal/utils"
	"github.com/eddieyong/financetracker/pkg/transaction"
)

// Store is the part of the finance store the export endpoints need.
type Store interface {
	Transactions() []transaction.Transaction
	ExportTransactions(ctx context.Context) bool
	Error() string
}

type ResultDTO struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type ExportHandler struct {
	store Store
	clock utils.Clock
}

func NewExportHandler(store Store, clock utils.Clock) *ExportHandler {
	return &ExportHandler{store: store, clock: clock}
}

// Download streams the CSV back as a file attachment.
func (handler *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	content := RenderCSV(handler.store.Transactions())
	filename := Filename(handler.clock.Now())

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

// Export delivers the CSV through the store's configured sink.
func (handler *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	result := ResultDTO{Success: handler.store.ExportTransactions(r.Context())}
	status := http.StatusOK
	if !result.Success {
		result.Error = handler.store.Error()
		status = http.StatusInternalServerError
	}

	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
