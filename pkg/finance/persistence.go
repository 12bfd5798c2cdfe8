package finance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/eddieyong/financetracker/pkg/budget"
	"github.com/eddieyong/financetracker/pkg/kvstore"
	"github.com/eddieyong/financetracker/pkg/money"
	"github.com/eddieyong/financetracker/pkg/settings"
	"github.com/eddieyong/financetracker/pkg/transaction"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

type transactionRecord struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Amount      lenientDecimal `json:"amount"`
	Category    string         `json:"category"`
	Date        string         `json:"date"`
	Notes       string         `json:"notes,omitempty"`
}

type budgetRecord struct {
	ID         string         `json:"id"`
	CategoryID string         `json:"categoryId"`
	Limit      lenientDecimal `json:"limit"`
	// LegacyAmount is the older name of Limit; it is read but never written.
	LegacyAmount *lenientDecimal `json:"amount,omitempty"`
	Month        lenientInt      `json:"month"`
	Year         lenientInt      `json:"year"`
	CreatedAt    string          `json:"createdAt,omitempty"`
	hasLimit     bool
}

func (r *budgetRecord) UnmarshalJSON(data []byte) error {
	type plain budgetRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, p.hasLimit = keys["limit"]
	*r = budgetRecord(p)
	return nil
}

// lenientDecimal accepts a JSON number or a numeric string. Anything else reads as zero.
type lenientDecimal struct {
	decimal.Decimal
}

func (d lenientDecimal) MarshalJSON() ([]byte, error) {
	return []byte(d.Decimal.String()), nil
}

func (d *lenientDecimal) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	d.Decimal = money.ParseOrZero(raw)
	return nil
}

// lenientInt accepts a JSON number or a numeric string, truncating fractions. Anything else reads as zero.
type lenientInt int

func (i *lenientInt) UnmarshalJSON(data []byte) error {
	var d lenientDecimal
	_ = d.UnmarshalJSON(data)
	*i = lenientInt(d.IntPart())
	return nil
}

// encodeTransactions writes rawDates[id] back for transactions whose stored date could not be parsed.
func encodeTransactions(txs []transaction.Transaction, rawDates map[string]string) (string, error) {
	records := make([]transactionRecord, 0, len(txs))
	for _, t := range txs {
		date := t.DateString()
		if raw, ok := rawDates[t.ID]; ok && t.Date.IsZero() {
			date = raw
		}
		records = append(records, transactionRecord{
			ID:          t.ID,
			Description: t.Description,
			Amount:      lenientDecimal{t.Amount},
			Category:    t.Category,
			Date:        date,
			Notes:       t.Notes,
		})
	}
	return marshal(records)
}

// decodeTransactions also returns the original text of every date it could not parse, keyed by transaction id.
func decodeTransactions(blob string) ([]transaction.Transaction, map[string]string, error) {
	var records []transactionRecord
	if err := json.Unmarshal([]byte(blob), &records); err != nil {
		return nil, nil, err
	}
	txs := make([]transaction.Transaction, 0, len(records))
	rawDates := map[string]string{}
	for _, r := range records {
		date, err := transaction.ParseDate(r.Date)
		if err != nil {
			log.Warnf("Transaction %s has unreadable date %q, keeping it as stored", r.ID, r.Date)
			rawDates[r.ID] = r.Date
		}
		txs = append(txs, transaction.Transaction{
			ID:          r.ID,
			Description: r.Description,
			Amount:      r.Amount.Decimal,
			Category:    r.Category,
			Date:        date,
			Notes:       r.Notes,
		})
	}
	return txs, rawDates, nil
}

func encodeBudgets(budgets []budget.Budget) (string, error) {
	records := make([]budgetRecord, 0, len(budgets))
	for _, b := range budgets {
		r := budgetRecord{
			ID:         b.ID,
			CategoryID: b.CategoryID,
			Limit:      lenientDecimal{b.Limit},
			Month:      lenientInt(b.Month),
			Year:       lenientInt(b.Year),
		}
		if !b.CreatedAt.IsZero() {
			r.CreatedAt = b.CreatedAt.UTC().Format(createdAtLayout)
		}
		records = append(records, r)
	}
	return marshal(records)
}

func decodeBudgets(blob string) ([]budget.Budget, error) {
	var records []budgetRecord
	if err := json.Unmarshal([]byte(blob), &records); err != nil {
		return nil, err
	}
	budgets := make([]budget.Budget, 0, len(records))
	for _, r := range records {
		limit := r.Limit.Decimal
		if !r.hasLimit && r.LegacyAmount != nil {
			limit = r.LegacyAmount.Decimal
		}
		var createdAt time.Time
		if r.CreatedAt != "" {
			parsed, err := time.Parse(time.RFC3339, r.CreatedAt)
			if err != nil {
				log.Warnf("Budget %s has unreadable createdAt %q", r.ID, r.CreatedAt)
			} else {
				createdAt = parsed.UTC()
			}
		}
		budgets = append(budgets, budget.Budget{
			ID:         r.ID,
			CategoryID: r.CategoryID,
			Limit:      limit,
			Month:      int(r.Month),
			Year:       int(r.Year),
			CreatedAt:  createdAt,
		})
	}
	return budgets, nil
}

func marshal(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

type loadedState struct {
	transactions []transaction.Transaction
	rawDates     map[string]string
	budgets      []budget.Budget
	settings     settings.Settings
}

func loadState(ctx context.Context, kv kvstore.Store) (loadedState, error) {
	state := loadedState{
		transactions: []transaction.Transaction{},
		rawDates:     map[string]string{},
		budgets:      []budget.Budget{},
		settings:     settings.Default(),
	}

	blob, err := readKey(ctx, kv, kvstore.KeyTransactions)
	if err != nil {
		return state, err
	}
	if blob != "" {
		if txs, rawDates, err := decodeTransactions(blob); err != nil {
			log.Warnf("Stored transactions are corrupt, starting empty: %v", err)
		} else {
			state.transactions = txs
			state.rawDates = rawDates
		}
	}

	if blob, err = readKey(ctx, kv, kvstore.KeyBudgets); err != nil {
		return state, err
	}
	if blob != "" {
		if budgets, err := decodeBudgets(blob); err != nil {
			log.Warnf("Stored budgets are corrupt, starting empty: %v", err)
		} else {
			state.budgets = budgets
		}
	}

	if blob, err = readKey(ctx, kv, kvstore.KeyCurrency); err != nil {
		return state, err
	}
	if blob != "" {
		state.settings.Currency = blob
	}

	if blob, err = readKey(ctx, kv, kvstore.KeyTheme); err != nil {
		return state, err
	}
	if theme := settings.Theme(blob); theme.Valid() {
		state.settings.Theme = theme
	} else if blob != "" {
		log.Warnf("Stored theme %q is unknown, using %s", blob, settings.DefaultTheme)
	}

	if blob, err = readKey(ctx, kv, kvstore.KeyColorTheme); err != nil {
		return state, err
	}
	if blob != "" {
		state.settings.ColorTheme = blob
	}

	return state, nil
}

// readKey returns "" for keys that were never written.
func readKey(ctx context.Context, kv kvstore.Store, key string) (string, error) {
	value, found, err := kv.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found {
		return "", nil
	}
	return value, nil
}

// persistLocked writes every persisted key. Failures are logged and never reach the caller.
// The writes outlive the caller's context so that a cancelled request cannot leave memory
// and storage apart.
func (s *StoreImpl) persistLocked(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	txBlob, err := encodeTransactions(s.transactions, s.rawDates)
	if err != nil {
		log.Errorf("Failed to encode transactions: %v", err)
	}
	budgetBlob, err := encodeBudgets(s.budgets)
	if err != nil {
		log.Errorf("Failed to encode budgets: %v", err)
	}

	writes := []struct {
		key, value string
		ok         bool
	}{
		{kvstore.KeyTransactions, txBlob, txBlob != ""},
		{kvstore.KeyBudgets, budgetBlob, budgetBlob != ""},
		{kvstore.KeyCurrency, s.settings.Currency, true},
		{kvstore.KeyTheme, string(s.settings.Theme), true},
		{kvstore.KeyColorTheme, s.settings.ColorTheme, true},
	}
	for _, w := range writes {
		if !w.ok {
			continue
		}
		if err := s.kv.Set(ctx, w.key, w.value); err != nil {
			log.Warnf("Failed to persist %s: %v", w.key, err)
		}
	}
}
