package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Format presenta un monto con símbolo de moneda y separadores del locale (solo presentación).
// Es el único lugar donde se redondea a 2 decimales.
func Format(amount decimal.Decimal, currencyCode, locale string) string {
	rounded := amount.Round(2)
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return rounded.StringFixed(2) + " " + currencyCode
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	f, _ := rounded.Float64()
	p := message.NewPrinter(tag)
	return p.Sprintf("%v %v", currency.Symbol(unit), number.Decimal(f, number.Scale(2)))
}
