package settings

import (
	"strconv"
	"strings"
)

// Currency format and theme values.
const (
	FormatStandard = "standard"
	FormatSpace    = "space"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings is the singleton display/configuration preferences object. It
// affects presentation only, never the underlying expense data. JSON keys
// match the original persisted shape so old blobs load unchanged.
type Settings struct {
	CurrencySymbol string `json:"currencySymbol"`
	CurrencyFormat string `json:"currencyFormat"`
	Theme          string `json:"theme"`
	EnableAI       bool   `json:"enableAI"`
}

// Defaults returns the settings applied on first run and used to backfill
// fields missing from legacy persisted shapes.
func Defaults() Settings {
	return Settings{
		CurrencySymbol: "$",
		CurrencyFormat: FormatStandard,
		Theme:          ThemeLight,
		EnableAI:       true,
	}
}

// FormatCurrency renders an amount with the configured symbol and format,
// two fraction digits and thousands separators.
func (s Settings) FormatCurrency(amount float64) string {
	space := ""
	if s.CurrencyFormat == FormatSpace {
		space = " "
	}
	return s.CurrencySymbol + space + formatAmount(amount)
}

func formatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	fixed := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
