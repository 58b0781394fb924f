// Package money renders amounts for display. Amounts are shown without fractional digits.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[currency.Unit]string{
	currency.INR: "₹",
	currency.USD: "$",
	currency.EUR: "€",
	currency.GBP: "£",
}

var printer = message.NewPrinter(language.MustParse("en-IN"))

// INR formats an amount the way the storefront shows prices, e.g. ₹4,999.
func INR(amount decimal.Decimal) string { return Format("inr", amount) }

// Format prefixes the rounded amount with the currency symbol. Unknown or
// unrecognized codes fall back to the upper-cased code.
func Format(code string, amount decimal.Decimal) string {
	sym := strings.ToUpper(code) + " "
	if unit, err := currency.ParseISO(code); err == nil {
		if s, ok := symbols[unit]; ok {
			sym = s
		}
	}
	n := amount.Round(0).IntPart()
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	return sign + sym + printer.Sprint(number.Decimal(n, number.MaxFractionDigits(0)))
}
