package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LabelFormatter renders a discount amount as a display string such as
// "Rp2.500 off". It only renders the value it is given and never re-derives
// a discount.
type LabelFormatter struct {
	Symbol string
	Suffix string
	Lang   language.Tag
}

// DefaultLabel carries the service defaults: rupiah prefix, "off" suffix,
// Indonesian digit grouping.
var DefaultLabel = LabelFormatter{Symbol: "Rp", Suffix: "off", Lang: language.Indonesian}

// NewLabel builds a formatter from configuration strings, falling back to
// the defaults when the locale does not parse.
func NewLabel(symbol, suffix, locale string) LabelFormatter {
	lang, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		lang = DefaultLabel.Lang
	}
	return LabelFormatter{Symbol: symbol, Suffix: suffix, Lang: lang}
}

// FormatDiscount renders d with the default label settings.
func FormatDiscount(d decimal.Decimal) string {
	return DefaultLabel.FormatDiscount(d)
}

// FormatDiscount returns the empty string for zero or negative amounts.
// Positive amounts round half away from zero to a whole number before
// display, so 99.6 renders as 100 and 0.5 as 1.
func (f LabelFormatter) FormatDiscount(d decimal.Decimal) string {
	if d.Sign() <= 0 {
		return ""
	}
	lang := f.Lang
	if lang == language.Und {
		lang = DefaultLabel.Lang
	}
	amount := message.NewPrinter(lang).Sprintf("%d", d.Round(0).IntPart())

	var b strings.Builder
	b.WriteString(f.Symbol)
	b.WriteString(amount)
	if f.Suffix != "" {
		b.WriteString(" ")
		b.WriteString(f.Suffix)
	}
	return b.String()
}
