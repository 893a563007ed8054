// Package money formats amounts in the calculator's single currency.
package money

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// Code is the ISO 4217 code of the only supported currency.
	Code   = "EUR"
	symbol = "€"
)

// Formatter renders amounts with two decimals using a locale's separators.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	prefix  bool
}

// NewFormatter returns a Formatter for a BCP 47 locale such as "en" or "fr-FR".
// Unknown or empty locales fall back to English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	base, _ := tag.Base()

	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
		prefix:  base.String() == "en",
	}
}

// Locale returns the locale the formatter was built for.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Format renders v rounded half away from zero to cents, e.g. "€1,234.50" or "1 234,50 €".
func (f *Formatter) Format(v float64) string {
	cents := decimal.Zero
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		cents = decimal.NewFromFloat(v).Round(2)
	}

	sign := ""
	if cents.IsNegative() {
		sign = "-"
		cents = cents.Neg()
	}

	number := f.printer.Sprintf("%.2f", cents.InexactFloat64())
	if f.prefix {
		return sign + symbol + number
	}
	return sign + number + " " + symbol
}
