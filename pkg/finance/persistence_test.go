package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eddieyong/financetracker/internal/event_bus"
	"github.com/eddieyong/financetracker/internal/test_utils"
	"github.com/eddieyong/financetracker/internal/utils"
	"github.com/eddieyong/financetracker/pkg/budget"
	"github.com/eddieyong/financetracker/pkg/kvstore"
	"github.com/eddieyong/financetracker/pkg/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReads struct {
	kvstore.Store
}

func (failingReads) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func reload(t *testing.T, kv kvstore.Store) *StoreImpl {
	t.Helper()
	store := NewStoreImpl(kv, nil, nil, &utils.MockClock{FixedNow: now}, 0)
	require.NoError(t, store.Load(context.Background()))
	return store
}

func TestLoad_EmptyBackendGivesDefaults(t *testing.T) {
	store := reload(t, kvstore.NewMemoryStore())

	snap := store.Snapshot()
	assert.Empty(t, snap.Transactions)
	assert.Empty(t, snap.Budgets)
	assert.Equal(t, settings.Default(), snap.Settings)
}

func TestLoad_RoundTrip(t *testing.T) {
	backends := map[string]func(t *testing.T) kvstore.Store{
		"memory": func(t *testing.T) kvstore.Store { return kvstore.NewMemoryStore() },
		"sqlite": func(t *testing.T) kvstore.Store { return kvstore.NewSQLiteStore(test_utils.SetupTestDB(t)) },
		"postgres": func(t *testing.T) kvstore.Store {
			return kvstore.NewPostgresStore(test_utils.SetupPostgres(t))
		},
	}

	for name, newBackend := range backends {
		t.Run(name, func(t *testing.T) {
			kv := newBackend(t)
			f, ctx := setupStoreTest(t)
			f.store.kv = kv

			f.store.AddTransaction(ctx, newTx("Pay", "1000.25", "salary", "2024-03-01"))
			f.store.AddTransaction(ctx, newTx(`Dinner at "Joe's"`, "-42.5", "food", "2024-03-02"))
			_, err := f.store.AddBudget(ctx, budget.NewBudget{CategoryID: "food", Limit: decimal.NewFromInt(500), Month: 3, Year: 2024})
			require.NoError(t, err)
			f.store.SetCurrency(ctx, "EUR")
			f.store.ToggleTheme(ctx)
			f.store.SetColorTheme(ctx, "purple")

			reloaded := reload(t, kv)

			before, after := f.store.Snapshot(), reloaded.Snapshot()
			require.Len(t, after.Transactions, 2)
			for i := range before.Transactions {
				assert.Equal(t, before.Transactions[i].ID, after.Transactions[i].ID)
				assert.Equal(t, before.Transactions[i].Description, after.Transactions[i].Description)
				assert.True(t, before.Transactions[i].Amount.Equal(after.Transactions[i].Amount))
				assert.Equal(t, before.Transactions[i].Date, after.Transactions[i].Date)
			}
			require.Len(t, after.Budgets, 1)
			assert.Equal(t, before.Budgets[0].ID, after.Budgets[0].ID)
			assert.True(t, before.Budgets[0].Limit.Equal(after.Budgets[0].Limit))
			assert.Equal(t, before.Budgets[0].CreatedAt, after.Budgets[0].CreatedAt)
			assert.Equal(t, settings.Settings{Currency: "EUR", Theme: settings.ThemeDark, ColorTheme: "purple"}, after.Settings)
			assert.True(t, before.Summary.Balance.Equal(after.Summary.Balance))
		})
	}
}

func TestLoad_LenientRecords(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, kvstore.KeyTransactions, `[
		{"id":"1","description":"Pay","amount":"1500.50","category":"salary","date":"2024-03-01"},
		{"id":"2","description":"Bad","amount":"abc","category":"food","date":"2024-03-02"},
		{"id":"3","description":"Obj","amount":{"x":1},"category":"food","date":"2024-03-03T09:00:00.000Z"}
	]`))
	require.NoError(t, kv.Set(ctx, kvstore.KeyBudgets, `[
		{"id":"b1","categoryId":"food","amount":300,"month":"3","year":2024,"createdAt":"2024-03-01T08:00:00.000Z"},
		{"id":"b2","categoryId":"transport","limit":"120","amount":999,"month":3,"year":"2024"}
	]`))

	store := reload(t, kv)

	txs := store.Transactions()
	require.Len(t, txs, 3)
	assert.True(t, decimal.RequireFromString("1500.5").Equal(txs[0].Amount))
	assert.True(t, txs[1].Amount.IsZero())
	assert.True(t, txs[2].Amount.IsZero())
	assert.Equal(t, "2024-03-03", txs[2].DateString())

	budgets := store.Budgets()
	require.Len(t, budgets, 2)
	assert.True(t, decimal.NewFromInt(300).Equal(budgets[0].Limit))
	assert.Equal(t, 3, budgets[0].Month)
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), budgets[0].CreatedAt)
	assert.True(t, decimal.NewFromInt(120).Equal(budgets[1].Limit))
	assert.Equal(t, 2024, budgets[1].Year)
}

func TestLoad_CorruptBlobsFallBack(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, kvstore.KeyTransactions, `{not json`))
	require.NoError(t, kv.Set(ctx, kvstore.KeyBudgets, `{"id":"not an array"}`))
	require.NoError(t, kv.Set(ctx, kvstore.KeyCurrency, "JPY"))
	require.NoError(t, kv.Set(ctx, kvstore.KeyTheme, "sepia"))
	require.NoError(t, kv.Set(ctx, kvstore.KeyColorTheme, ""))

	store := reload(t, kv)

	assert.Empty(t, store.Transactions())
	assert.Empty(t, store.Budgets())
	assert.Equal(t, settings.Settings{Currency: "JPY", Theme: settings.ThemeLight, ColorTheme: "default"}, store.Settings())
}

func TestLoad_NullBlob(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, kvstore.KeyTransactions, `null`))

	store := reload(t, kv)

	assert.NotNil(t, store.Transactions())
	assert.Empty(t, store.Transactions())
}

func TestLoad_BackendFailure(t *testing.T) {
	store := NewStoreImpl(failingReads{}, nil, nil, &utils.MockClock{FixedNow: now}, 0)

	err := store.Load(context.Background())

	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, settings.Default(), store.Settings())
}

func TestEncodeBudgets(t *testing.T) {
	blob, err := encodeBudgets([]budget.Budget{{
		ID:         "b1",
		CategoryID: "food",
		Limit:      decimal.RequireFromString("250.75"),
		Month:      3,
		Year:       2024,
		CreatedAt:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}})

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b1","categoryId":"food","limit":250.75,"month":3,"year":2024,"createdAt":"2024-03-01T08:00:00.000Z"}]`, blob)
}

func TestPersist_CancelledRequestContext(t *testing.T) {
	kv := kvstore.NewSQLiteStore(test_utils.SetupTestDB(t))
	f, _ := setupStoreTest(t)
	f.store.kv = kv
	added := countEvents(f.bus, event_bus.TransactionAddedType)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.store.AddTransaction(ctx, newTx("Pay", "1000", "salary", "2024-03-01"))

	reloaded := reload(t, kv)
	require.Len(t, f.store.Transactions(), 1)
	require.Len(t, reloaded.Transactions(), 1)
	assert.Equal(t, f.store.Transactions()[0].ID, reloaded.Transactions()[0].ID)
	assert.Equal(t, 1, *added)
}

func TestLoad_UnreadableDateIsKeptAsStored(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, kvstore.KeyTransactions,
		`[{"id":"a","description":"Old","amount":10,"category":"food","date":"2024/01/05"}]`))
	store := reload(t, kv)
	require.Len(t, store.Transactions(), 1)
	assert.True(t, store.Transactions()[0].Date.IsZero())

	store.ToggleTheme(ctx)
	store.AddTransaction(ctx, newTx("New", "5", "food", "2024-03-01"))

	blob, found, err := kv.Get(ctx, kvstore.KeyTransactions)
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, blob, `"date":"2024/01/05"`)
	assert.NotContains(t, blob, "0001-01-01")
	assert.Contains(t, blob, `"date":"2024-03-01"`)

	again := reload(t, kv)
	require.Len(t, again.Transactions(), 2)
}

func TestLenientDecimal(t *testing.T) {
	cases := map[string]string{
		`12.5`:       "12.5",
		`"  -3.20 "`: "-3.2",
		`"abc"`:      "0",
		`""`:         "0",
		`null`:       "0",
		`{"x":1}`:    "0",
	}
	for input, expected := range cases {
		t.Run(input, func(t *testing.T) {
			var d lenientDecimal
			require.NoError(t, d.UnmarshalJSON([]byte(input)))
			assert.True(t, decimal.RequireFromString(expected).Equal(d.Decimal), "got %s", d.Decimal)
		})
	}
}
