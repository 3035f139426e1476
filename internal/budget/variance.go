// Package budget implements planned-vs-actual arithmetic for event budgets.
package budget

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Variance returns actual - planned.
func Variance(planned, actual decimal.Decimal) decimal.Decimal {
	return actual.Sub(planned)
}

// VariancePercentage returns variance/planned*100. Both zero is a 0% variance.
// A variance against a zero plan has no percentage; ok is false and the
// returned value is zero.
func VariancePercentage(planned, actual decimal.Decimal) (pct decimal.Decimal, ok bool) {
	if planned.IsZero() {
		return decimal.Zero, actual.IsZero()
	}
	return Variance(planned, actual).Div(planned).Mul(hundred), true
}

// LineParams holds the user-entered fields of a budget line.
type LineParams struct {
	Category    string
	Subcategory string
	Description string
	Event       string
	Planned     decimal.Decimal
	Actual      decimal.Decimal
	Notes       string
	VATPercent  decimal.Decimal
}

// NewLineItem builds a line with a fresh id and its derived variance fields.
func NewLineItem(p LineParams) model.LineItem {
	item := model.LineItem{
		Base:        model.Base{ID: uuid.NewString()},
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Description: p.Description,
		Event:       p.Event,
		Planned:     p.Planned,
		Actual:      p.Actual,
		Notes:       p.Notes,
		VATPercent:  p.VATPercent,
	}
	return Recompute(item)
}

// Recompute refreshes Variance and VariancePercentage from Planned and Actual.
// An undefined percentage is stored as zero.
func Recompute(item model.LineItem) model.LineItem {
	item.Variance = Variance(item.Planned, item.Actual)
	item.VariancePercentage, _ = VariancePercentage(item.Planned, item.Actual)
	return item
}

// VATAmount returns the VAT carried by the actual amount of item.
func VATAmount(item model.LineItem) decimal.Decimal {
	return item.Actual.Mul(item.VATPercent).Div(hundred)
}

// GrossActual returns the actual amount plus VAT.
func GrossActual(item model.LineItem) decimal.Decimal {
	return item.Actual.Add(VATAmount(item))
}
