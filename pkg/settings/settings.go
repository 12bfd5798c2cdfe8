package settings

import "errors"

var (
	ErrNoCurrency   = errors.New("Please select a currency")
	ErrNoColorTheme = errors.New("Please select a color theme")
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	DefaultCurrency   = "MYR"
	DefaultTheme      = ThemeLight
	DefaultColorTheme = "default"
)

type Settings struct {
	Currency   string
	Theme      Theme
	ColorTheme string
}

func Default() Settings {
	return Settings{
		Currency:   DefaultCurrency,
		Theme:      DefaultTheme,
		ColorTheme: DefaultColorTheme,
	}
}

// Toggled flips light to dark. Anything else becomes light.
func (t Theme) Toggled() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
