package money

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("Please enter a valid amount")

const (
	ClassPositive = "text-success"
	ClassNegative = "text-danger"
)

var symbols = map[string]string{
	"MYR": "RM",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"SGD": "S$",
	"AUD": "A$",
	"CAD": "C$",
	"CNY": "¥",
	"INR": "₹",
	"IDR": "Rp",
	"THB": "฿",
}

// Symbol returns the display symbol for a currency code, or the code itself when unknown.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return code
}

// FormatCurrency renders amount with two decimals, grouped thousands and the currency symbol,
// e.g. "RM1,234.50" or "-$5.00".
func FormatCurrency(amount decimal.Decimal, code string) string {
	return signed(amount, 2, Symbol(code), "")
}

// FormatPercentage renders value (already scaled to 0..100) with one decimal, e.g. "40.0%".
func FormatPercentage(value decimal.Decimal) string {
	return signed(value, 1, "", "%")
}

func ClassOf(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return ClassNegative
	}
	return ClassPositive
}

// Parse reads a decimal amount, tolerating surrounding whitespace.
func Parse(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseOrZero is Parse with unparseable input normalised to zero.
func ParseOrZero(raw string) decimal.Decimal {
	d, err := Parse(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func signed(value decimal.Decimal, places int32, prefix, suffix string) string {
	rounded := value.Round(places)
	abs := rounded.Abs()

	fixed := abs.StringFixed(places)
	frac := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		frac = fixed[i:]
	}

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(prefix)
	b.WriteString(humanize.Comma(abs.IntPart()))
	b.WriteString(frac)
	b.WriteString(suffix)
	return b.String()
}

// Text is an amount as typed by a user. It decodes from a JSON string or a JSON number.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}
