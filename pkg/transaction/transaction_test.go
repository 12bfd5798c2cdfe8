package transaction

import (
	"testing"
	"time"

	"github.com/eddieyong/financetracker/pkg/category"
	"github.com/eddieyong/financetracker/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		form    Form
		wantErr error
		want    NewTransaction
	}{
		{
			name:    "blank description",
			form:    Form{Description: "   ", Amount: "10", Category: "food"},
			wantErr: ErrEmptyDescription,
		},
		{
			name:    "missing amount",
			form:    Form{Description: "Lunch", Category: "food"},
			wantErr: money.ErrInvalidAmount,
		},
		{
			name:    "non numeric amount",
			form:    Form{Description: "Lunch", Amount: "ten", Category: "food"},
			wantErr: money.ErrInvalidAmount,
		},
		{
			name:    "zero amount",
			form:    Form{Description: "Lunch", Amount: "0", Category: "food"},
			wantErr: money.ErrInvalidAmount,
		},
		{
			name:    "no category",
			form:    Form{Description: "Lunch", Amount: "10"},
			wantErr: category.ErrNoCategory,
		},
		{
			name:    "bad date",
			form:    Form{Description: "Lunch", Amount: "10", Category: "food", Date: "yesterday"},
			wantErr: ErrInvalidDate,
		},
		{
			name: "expense is negated",
			form: Form{Description: "Lunch", Amount: "12.50", Category: "food", Type: category.KindExpense, Date: "2024-03-02", Notes: "team"},
			want: NewTransaction{
				Description: "Lunch",
				Amount:      decimal.RequireFromString("-12.5"),
				Category:    "food",
				Date:        time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
				Notes:       "team",
			},
		},
		{
			name: "income stays positive",
			form: Form{Description: "Pay", Amount: "1000", Category: "salary", Type: category.KindIncome},
			want: NewTransaction{Description: "Pay", Amount: decimal.NewFromInt(1000), Category: "salary"},
		},
		{
			name: "missing type defaults to expense",
			form: Form{Description: "Bus", Amount: "2", Category: "transportation"},
			want: NewTransaction{Description: "Bus", Amount: decimal.NewFromInt(-2), Category: "transportation"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.form.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Description, got.Description)
			assert.True(t, tt.want.Amount.Equal(got.Amount), "amount %s", got.Amount)
			assert.Equal(t, tt.want.Category, got.Category)
			assert.Equal(t, tt.want.Date, got.Date)
			assert.Equal(t, tt.want.Notes, got.Notes)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-01-05T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("05/01/2024")
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Description: "Salary March", Amount: decimal.NewFromInt(3000), Category: "salary"},
		{ID: "2", Description: "Groceries", Amount: decimal.NewFromInt(-80), Category: "food", Notes: "weekly shop"},
		{ID: "3", Description: "Refund", Amount: decimal.Zero, Category: "shopping"},
		{ID: "4", Description: "Train", Amount: decimal.NewFromInt(-5), Category: "transportation"},
	}
	ids := func(txs []Transaction) []string {
		var out []string
		for _, t := range txs {
			out = append(out, t.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Filter(txs, FilterAll, "")))
	assert.Equal(t, []string{"1", "3"}, ids(Filter(txs, FilterIncome, "")))
	assert.Equal(t, []string{"2", "3", "4"}, ids(Filter(txs, FilterExpense, "")))
	assert.Equal(t, []string{"2"}, ids(Filter(txs, FilterAll, "WEEKLY")))
	assert.Equal(t, []string{"4"}, ids(Filter(txs, FilterExpense, "transport")))
	assert.Empty(t, Filter(txs, FilterIncome, "groceries"))
}
