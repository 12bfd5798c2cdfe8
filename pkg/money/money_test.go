package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		code   string
		want   string
	}{
		{"1234.5", "MYR", "RM1,234.50"},
		{"-5", "MYR", "-RM5.00"},
		{"0", "USD", "$0.00"},
		{"1000000", "EUR", "€1,000,000.00"},
		{"0.005", "GBP", "£0.01"},
		{"-0.001", "SGD", "S$0.00"},
		{"99.999", "THB", "฿100.00"},
		{"12", "XYZ", "XYZ12.00"},
	}
	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.amount), tt.code))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "40.0%", FormatPercentage(decimal.NewFromInt(40)))
	assert.Equal(t, "33.3%", FormatPercentage(decimal.NewFromInt(100).Div(decimal.NewFromInt(3))))
	assert.Equal(t, "-12.5%", FormatPercentage(decimal.RequireFromString("-12.5")))
	assert.Equal(t, "0.0%", FormatPercentage(decimal.Zero))
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, ClassPositive, ClassOf(decimal.NewFromInt(10)))
	assert.Equal(t, ClassPositive, ClassOf(decimal.Zero))
	assert.Equal(t, ClassNegative, ClassOf(decimal.RequireFromString("-0.5")))
}

func TestParse(t *testing.T) {
	d, err := Parse(" 12.30 ")
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.3").Equal(d))

	_, err = Parse("twelve")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.True(t, ParseOrZero("nope").IsZero())
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "RM", Symbol("MYR"))
	assert.Equal(t, "Rp", Symbol("IDR"))
	assert.Equal(t, "CHF", Symbol("CHF"))
}

func TestText_UnmarshalJSON(t *testing.T) {
	var v struct {
		A Text `json:"a"`
		B Text `json:"b"`
		C Text `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a": 12.5, "b": "-3", "c": null}`), &v)

	assert.NoError(t, err)
	assert.Equal(t, Text("12.5"), v.A)
	assert.Equal(t, Text("-3"), v.B)
	assert.Equal(t, Text(""), v.C)
	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &v))
}
