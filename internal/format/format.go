// Package format renders money and variance for reports and the CLI.
package format

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

type currencyStyle struct {
	group  string
	point  string
	prefix string
	suffix string
}

var currencyStyles = map[string]currencyStyle{
	"PLN": {group: "\u202f", point: ",", suffix: " zł"},
	"EUR": {group: "\u202f", point: ",", suffix: " €"},
	"USD": {group: ",", point: ".", prefix: "$"},
	"GBP": {group: ",", point: ".", prefix: "£"},
}

// Currency formats amount with two decimals in the conventions of code.
// Unknown codes fall back to comma grouping followed by the code.
func Currency(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	style, ok := currencyStyles[code]
	if !ok {
		style = currencyStyle{group: ",", point: ".", suffix: " " + code}
	}

	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	_, cents, _ := strings.Cut(rounded.StringFixed(2), ".")
	grouped := humanize.BigComma(rounded.Truncate(0).BigInt())
	if style.group != "," {
		grouped = strings.ReplaceAll(grouped, ",", style.group)
	}
	return sign + style.prefix + grouped + style.point + cents + style.suffix
}

// Percent formats p, already scaled to 0..100, as "12.34%".
func Percent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}
