package export

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eddieyong/financetracker/internal/utils"
	"github.com/eddieyong/financetracker/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []transaction.Transaction{
	{ID: "1", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Description: "Pay", Category: "salary", Amount: decimal.NewFromInt(1000)},
	{ID: "2", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Description: "Coffee", Category: "food", Amount: decimal.NewFromInt(-5)},
}

func TestRenderCSV(t *testing.T) {
	t.Run("header and quoted rows in order", func(t *testing.T) {
		expected := `"Date","Description","Category","Amount"` + "\n" +
			`"2024-01-01","Pay","salary","1000"` + "\n" +
			`"2024-01-05","Coffee","food","-5"` + "\n"

		assert.Equal(t, expected, RenderCSV(sample))
	})

	t.Run("no transactions", func(t *testing.T) {
		assert.Equal(t, `"Date","Description","Category","Amount"`+"\n", RenderCSV(nil))
	})

	t.Run("embedded quotes and commas stay parseable", func(t *testing.T) {
		txs := []transaction.Transaction{{
			Date:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Description: `Dinner at "Joe's", downtown`,
			Category:    "food",
			Amount:      decimal.RequireFromString("-42.50"),
		}}

		records, err := csv.NewReader(strings.NewReader(RenderCSV(txs))).ReadAll()

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"2024-02-01", `Dinner at "Joe's", downtown`, "food", "-42.5"}, records[1])
	})
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "money_tracker_export_2024-03-09.csv", Filename(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)))

	// 01:30 on the 10th in Kuala Lumpur is still the 9th in UTC
	kl := time.FixedZone("MYT", 8*60*60)
	assert.Equal(t, "money_tracker_export_2024-03-09.csv", Filename(time.Date(2024, 3, 10, 1, 30, 0, 0, kl)))
}

func TestFileSink_Deliver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	sink := NewFileSink(dir)

	err := sink.Deliver(context.Background(), "out.csv", []byte("data"))

	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestFileSink_DeliverFailsOnBadDir(t *testing.T) {
	// a regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := NewFileSink(blocker).Deliver(context.Background(), "out.csv", []byte("data"))

	assert.Error(t, err)
}

type stubStore struct {
	exportOK bool
	err      string
}

func (s *stubStore) Transactions() []transaction.Transaction { return sample }

func (s *stubStore) ExportTransactions(ctx context.Context) bool {
	if !s.exportOK {
		s.err = "Failed to export transactions"
	}
	return s.exportOK
}

func (s *stubStore) Error() string { return s.err }

func TestExportHandler(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2024, 1, 6, 8, 0, 0, 0, time.UTC)}

	t.Run("download", func(t *testing.T) {
		handler := NewExportHandler(&stubStore{}, clock)

		w := httptest.NewRecorder()
		handler.Download(w, httptest.NewRequest(http.MethodGet, "/api/export", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="money_tracker_export_2024-01-06.csv"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, RenderCSV(sample), w.Body.String())
	})

	t.Run("export success", func(t *testing.T) {
		handler := NewExportHandler(&stubStore{exportOK: true}, clock)

		w := httptest.NewRecorder()
		handler.Export(w, httptest.NewRequest(http.MethodPost, "/api/export", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
	})

	t.Run("export failure", func(t *testing.T) {
		handler := NewExportHandler(&stubStore{}, clock)

		w := httptest.NewRecorder()
		handler.Export(w, httptest.NewRequest(http.MethodPost, "/api/export", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"Failed to export transactions"}`, w.Body.String())
	})
}

func TestMemorySink(t *testing.T) {
	sink := &MemorySink{}
	require.NoError(t, sink.Deliver(context.Background(), "a.csv", []byte("x")))
	assert.Equal(t, "a.csv", sink.Filename)

	sink.Err = errors.New("disk full")
	assert.EqualError(t, sink.Deliver(context.Background(), "b.csv", []byte("y")), "disk full")
	assert.Equal(t, "a.csv", sink.Filename)
}
