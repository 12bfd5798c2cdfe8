package settings

import "github.com/eddieyong/financetracker/pkg/money"

type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type ColorTheme struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

var currencyNames = []struct{ code, name string }{
	{"MYR", "Malaysian Ringgit"},
	{"USD", "US Dollar"},
	{"EUR", "Euro"},
	{"GBP", "British Pound"},
	{"JPY", "Japanese Yen"},
	{"SGD", "Singapore Dollar"},
	{"AUD", "Australian Dollar"},
	{"CAD", "Canadian Dollar"},
	{"CNY", "Chinese Yuan"},
	{"INR", "Indian Rupee"},
	{"IDR", "Indonesian Rupiah"},
	{"THB", "Thai Baht"},
}

var colorThemes = []ColorTheme{
	{ID: "default", Name: "Default (Green)", Color: "#4CAF50"},
	{ID: "blue", Name: "Ocean Blue", Color: "#2196F3"},
	{ID: "purple", Name: "Royal Purple", Color: "#9C27B0"},
	{ID: "orange", Name: "Sunset Orange", Color: "#FF9800"},
	{ID: "teal", Name: "Teal", Color: "#009688"},
}

// Currencies lists the currencies offered in the settings screen.
func Currencies() []Currency {
	out := make([]Currency, 0, len(currencyNames))
	for _, c := range currencyNames {
		out = append(out, Currency{Code: c.code, Name: c.name, Symbol: money.Symbol(c.code)})
	}
	return out
}

func ColorThemes() []ColorTheme {
	return append([]ColorTheme(nil), colorThemes...)
}
