package valuation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseSeries parses a comma-separated list of numbers such as
// "100, 120.5, 140". Blank input yields an empty series.
func ParseSeries(s string) ([]decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]decimal.Decimal, 0, len(parts))
	for i, p := range parts {
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("value %d %q is not a number: %w", i+1, strings.TrimSpace(p), err)
		}
		out = append(out, d)
	}
	return out, nil
}
