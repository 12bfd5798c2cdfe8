package budget

import (
	"testing"
	"time"

	"github.com/eddieyong/financetracker/pkg/category"
	"github.com/eddieyong/financetracker/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		month, year int
		first, last time.Time
	}{
		{1, 2024, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		{2, 2024, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{2, 2023, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{12, 2024, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		first, last := Window(tt.month, tt.year)
		assert.Equal(t, tt.first, first)
		assert.Equal(t, tt.last, last)
	}
}

var existing = []Budget{
	{ID: "b1", CategoryID: "food", Limit: decimal.NewFromInt(500), Month: 3, Year: 2024},
	{ID: "b2", CategoryID: "travel", Limit: decimal.NewFromInt(200), Month: 3, Year: 2024},
	{ID: "b3", CategoryID: "food", Limit: decimal.NewFromInt(450), Month: 4, Year: 2024},
}

func TestFindConflict(t *testing.T) {
	found, ok := FindConflict(existing, "food", 3, 2024, "")
	assert.True(t, ok)
	assert.Equal(t, "b1", found.ID)

	// editing the same record is not a conflict
	_, ok = FindConflict(existing, "food", 3, 2024, "b1")
	assert.False(t, ok)

	_, ok = FindConflict(existing, "food", 3, 2025, "")
	assert.False(t, ok)
}

func TestForMonth(t *testing.T) {
	march := ForMonth(existing, 3, 2024)
	require.Len(t, march, 2)
	assert.Equal(t, "b1", march[0].ID)
	assert.Equal(t, "b2", march[1].ID)
	assert.Empty(t, ForMonth(existing, 5, 2024))
	assert.NotNil(t, ForMonth(nil, 5, 2024))
}

func TestStatusOf(t *testing.T) {
	progress := func(amount, limit int64) Progress {
		return Progress{Amount: decimal.NewFromInt(amount), Limit: decimal.NewFromInt(limit)}
	}
	assert.Equal(t, StatusOK, StatusOf(progress(0, 0)))
	assert.Equal(t, StatusOK, StatusOf(progress(75, 100)))
	assert.Equal(t, StatusWarning, StatusOf(progress(76, 100)))
	assert.Equal(t, StatusWarning, StatusOf(progress(100, 100)))
	assert.Equal(t, StatusOver, StatusOf(progress(150, 100)))
}

func TestForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		form      Form
		editingID string
		wantErr   error
	}{
		{"no category", Form{Amount: "10", Month: 3, Year: 2024}, "", category.ErrNoCategory},
		{"no amount", Form{CategoryID: "food", Month: 3, Year: 2024}, "", money.ErrInvalidAmount},
		{"zero amount", Form{CategoryID: "food", Amount: "0", Month: 3, Year: 2024}, "", money.ErrInvalidAmount},
		{"negative amount", Form{CategoryID: "food", Amount: "-10", Month: 3, Year: 2024}, "", money.ErrInvalidAmount},
		{"month out of range", Form{CategoryID: "food", Amount: "10", Month: 13, Year: 2024}, "", ErrInvalidPeriod},
		{"duplicate", Form{CategoryID: "food", Amount: "10", Month: 3, Year: 2024}, "", ErrBudgetExists},
		{"duplicate of another record while editing", Form{CategoryID: "food", Amount: "10", Month: 4, Year: 2024}, "b1", ErrBudgetExists},
		{"editing itself", Form{CategoryID: "food", Amount: "600", Month: 3, Year: 2024}, "b1", nil},
		{"new month", Form{CategoryID: "food", Amount: "300.50", Month: 5, Year: 2024}, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.form.Validate(existing, tt.editingID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.form.CategoryID, got.CategoryID)
			assert.Equal(t, tt.form.Month, got.Month)
			assert.True(t, decimal.RequireFromString(string(tt.form.Amount)).Equal(got.Limit))
		})
	}
}
