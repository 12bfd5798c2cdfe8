package finance

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/eddieyong/financetracker/internal/event_bus"
	"github.com/eddieyong/financetracker/internal/utils"
	"github.com/eddieyong/financetracker/pkg/budget"
	"github.com/eddieyong/financetracker/pkg/export"
	"github.com/eddieyong/financetracker/pkg/kvstore"
	"github.com/eddieyong/financetracker/pkg/settings"
	"github.com/eddieyong/financetracker/pkg/stats"
	"github.com/eddieyong/financetracker/pkg/transaction"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const DefaultErrorTTL = 3 * time.Second

const exportFailedMessage = "Failed to export transactions"

// Store owns all finance state. Every mutation recomputes the summary, writes the
// persisted keys and publishes an event.
type Store interface {
	Load(ctx context.Context) error

	Transactions() []transaction.Transaction
	Budgets() []budget.Budget
	Summary() stats.Summary
	Settings() settings.Settings
	Error() string
	Snapshot() Snapshot

	AddTransaction(ctx context.Context, input transaction.NewTransaction) transaction.Transaction
	DeleteTransaction(ctx context.Context, id string) bool

	AddBudget(ctx context.Context, input budget.NewBudget) (budget.Budget, error)
	UpdateBudget(ctx context.Context, b budget.Budget) (bool, error)
	DeleteBudget(ctx context.Context, id string) bool
	CalculateBudgetProgress(categoryID string, month, year int) budget.Progress

	SetCurrency(ctx context.Context, code string)
	ToggleTheme(ctx context.Context)
	SetColorTheme(ctx context.Context, id string)

	SetError(ctx context.Context, message string)
	ExportTransactions(ctx context.Context) bool
}

// Snapshot is a consistent copy of the whole state.
type Snapshot struct {
	Transactions []transaction.Transaction
	Budgets      []budget.Budget
	Summary      stats.Summary
	Settings     settings.Settings
	Error        string
}

type StoreImpl struct {
	mu sync.Mutex

	transactions []transaction.Transaction
	budgets      []budget.Budget
	summary      stats.Summary
	settings     settings.Settings
	// rawDates holds the stored text of dates Load could not parse, so they are written back as found.
	rawDates map[string]string

	errorMessage string
	errorTimer   utils.Timer
	// errorGen identifies the latest SetError; a timer from an older call must not clear a newer message.
	errorGen uint64
	errorTTL time.Duration

	kv    kvstore.Store
	sink  export.Sink
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewStoreImpl(kv kvstore.Store, sink export.Sink, bus *event_bus.EventBus, clock utils.Clock, errorTTL time.Duration) *StoreImpl {
	if errorTTL <= 0 {
		errorTTL = DefaultErrorTTL
	}
	s := &StoreImpl{
		transactions: []transaction.Transaction{},
		budgets:      []budget.Budget{},
		settings:     settings.Default(),
		errorTTL:     errorTTL,
		kv:           kv,
		sink:         sink,
		bus:          bus,
		clock:        clock,
	}
	s.summary = stats.CalculateSummary(s.transactions)
	return s
}

// Load replaces the in-memory state with what the kv store holds. Missing or unreadable
// entries fall back to their defaults; only a failing backend is reported.
func (s *StoreImpl) Load(ctx context.Context) error {
	loaded, err := loadState(ctx, s.kv)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = loaded.transactions
	s.rawDates = loaded.rawDates
	s.budgets = loaded.budgets
	s.settings = loaded.settings
	s.summary = stats.CalculateSummary(s.transactions)
	log.Infof("Loaded %d transactions and %d budgets", len(s.transactions), len(s.budgets))
	return nil
}

func (s *StoreImpl) Transactions() []transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions)
}

func (s *StoreImpl) Budgets() []budget.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.budgets)
}

func (s *StoreImpl) Summary() stats.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func (s *StoreImpl) Settings() settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *StoreImpl) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorMessage
}

func (s *StoreImpl) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Transactions: slices.Clone(s.transactions),
		Budgets:      slices.Clone(s.budgets),
		Summary:      s.summary,
		Settings:     s.settings,
		Error:        s.errorMessage,
	}
}

// AddTransaction prepends a new transaction with a fresh id. The input is expected to be validated.
func (s *StoreImpl) AddTransaction(ctx context.Context, input transaction.NewTransaction) transaction.Transaction {
	date := input.Date
	if date.IsZero() {
		date = utils.Today(s.clock)
	}
	t := transaction.Transaction{
		ID:          uuid.NewString(),
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        date,
		Notes:       input.Notes,
	}

	s.mu.Lock()
	s.transactions = append([]transaction.Transaction{t}, s.transactions...)
	s.commitLocked(ctx)
	s.mu.Unlock()

	log.Debugf("Added transaction %s (%s, %s)", t.ID, t.Category, t.Amount)
	s.publish(ctx, event_bus.TransactionAddedType, event_bus.TransactionAdded{
		ID:       t.ID,
		Category: t.Category,
		Amount:   t.Amount.String(),
		Date:     t.DateString(),
	})
	return t
}

// DeleteTransaction removes the transaction with the id. An unknown id is a no-op.
func (s *StoreImpl) DeleteTransaction(ctx context.Context, id string) bool {
	s.mu.Lock()
	before := len(s.transactions)
	s.transactions = slices.DeleteFunc(s.transactions, func(t transaction.Transaction) bool {
		return t.ID == id
	})
	found := len(s.transactions) != before
	s.commitLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, event_bus.TransactionDeletedType, event_bus.TransactionDeleted{ID: id, Found: found})
	return found
}

// AddBudget appends a budget unless one already exists for the same category and month.
func (s *StoreImpl) AddBudget(ctx context.Context, input budget.NewBudget) (budget.Budget, error) {
	s.mu.Lock()
	if _, exists := budget.Find(s.budgets, input.CategoryID, input.Month, input.Year); exists {
		s.mu.Unlock()
		s.SetError(ctx, budget.ErrBudgetExists.Error())
		return budget.Budget{}, budget.ErrBudgetExists
	}
	b := budget.Budget{
		ID:         uuid.NewString(),
		CategoryID: input.CategoryID,
		Limit:      input.Limit,
		Month:      input.Month,
		Year:       input.Year,
		CreatedAt:  s.clock.Now().UTC(),
	}
	s.budgets = append(s.budgets, b)
	s.commitLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, event_bus.BudgetAddedType, event_bus.BudgetChanged{
		ID: b.ID, CategoryID: b.CategoryID, Month: b.Month, Year: b.Year, Found: true,
	})
	return b, nil
}

// UpdateBudget replaces the budget with the same id in place. CreatedAt is kept from the stored budget.
// An unknown id is a no-op reported as false.
func (s *StoreImpl) UpdateBudget(ctx context.Context, b budget.Budget) (bool, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.budgets, func(existing budget.Budget) bool {
		return existing.ID == b.ID
	})
	if idx >= 0 {
		if _, conflict := budget.FindConflict(s.budgets, b.CategoryID, b.Month, b.Year, b.ID); conflict {
			s.mu.Unlock()
			s.SetError(ctx, budget.ErrBudgetExists.Error())
			return false, budget.ErrBudgetExists
		}
		b.CreatedAt = s.budgets[idx].CreatedAt
		s.budgets[idx] = b
	}
	s.commitLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, event_bus.BudgetUpdatedType, event_bus.BudgetChanged{
		ID: b.ID, CategoryID: b.CategoryID, Month: b.Month, Year: b.Year, Found: idx >= 0,
	})
	return idx >= 0, nil
}

func (s *StoreImpl) DeleteBudget(ctx context.Context, id string) bool {
	s.mu.Lock()
	var removed budget.Budget
	found := false
	s.budgets = slices.DeleteFunc(s.budgets, func(b budget.Budget) bool {
		if b.ID == id {
			removed, found = b, true
			return true
		}
		return false
	})
	s.commitLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, event_bus.BudgetDeletedType, event_bus.BudgetChanged{
		ID: id, CategoryID: removed.CategoryID, Month: removed.Month, Year: removed.Year, Found: found,
	})
	return found
}

func (s *StoreImpl) CalculateBudgetProgress(categoryID string, month, year int) budget.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.CalculateBudgetProgress(s.budgets, s.transactions, categoryID, month, year)
}

func (s *StoreImpl) SetCurrency(ctx context.Context, code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	s.mu.Lock()
	s.settings.Currency = code
	s.commitLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, event_bus.SettingsChangedType, event_bus.SettingsChanged{Key: kvstore.KeyCurrency, Value: code})
}

func (s *StoreImpl) ToggleTheme(ctx context.Context) {
	s.mu.Lock()
	s.settings.Theme = s.settings.Theme.Toggled()
	theme := s.settings.Theme
	s.commitLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, event_bus.SettingsChangedType, event_bus.SettingsChanged{Key: kvstore.KeyTheme, Value: string(theme)})
}

func (s *StoreImpl) SetColorTheme(ctx context.Context, id string) {
	s.mu.Lock()
	s.settings.ColorTheme = id
	s.commitLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, event_bus.SettingsChangedType, event_bus.SettingsChanged{Key: kvstore.KeyColorTheme, Value: id})
}

// ExportTransactions renders the transaction list as CSV and hands it to the sink.
// On failure the transient error is set and false is returned.
func (s *StoreImpl) ExportTransactions(ctx context.Context) bool {
	txs := s.Transactions()
	filename := export.Filename(s.clock.Now())

	if s.sink == nil {
		log.Error("Export requested but no export sink is configured")
		s.SetError(ctx, exportFailedMessage)
		return false
	}
	if err := s.sink.Deliver(ctx, filename, []byte(export.RenderCSV(txs))); err != nil {
		log.Errorf("Failed to export %d transactions to %s: %v", len(txs), filename, err)
		s.SetError(ctx, exportFailedMessage)
		return false
	}
	log.Infof("Exported %d transactions to %s", len(txs), filename)
	return true
}

// commitLocked recomputes derived state and writes every persisted key. Must be called with mu held.
func (s *StoreImpl) commitLocked(ctx context.Context) {
	s.summary = stats.CalculateSummary(s.transactions)
	s.persistLocked(ctx)
}

func (s *StoreImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(context.WithoutCancel(ctx), eventType, s.clock.Now(), data)); err != nil {
		log.Warnf("Publishing %s failed: %v", eventType, err)
	}
}
