package budget

import (
	"fmt"

	"github.com/stagebooks-dev/stagebooks/internal/model"
)

// ValidationError describes a problem with one budget line.
type ValidationError struct {
	ItemID      string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("line [%s]: %s", e.ItemID, e.Description)
}

// ValidateItems checks a set of lines of one kind against the chart.
func ValidateItems(items []model.LineItem, kind model.LineKind, cats *Categories) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for _, it := range items {
		if it.ID != "" && seen[it.ID] {
			errs = append(errs, ValidationError{ItemID: it.ID, Description: "duplicate id"})
		}
		seen[it.ID] = true

		cat, ok := cats.Get(it.Category)
		switch {
		case !ok:
			errs = append(errs, ValidationError{ItemID: it.ID, Description: fmt.Sprintf("unknown category %q", it.Category)})
		case cat.Kind != kind:
			errs = append(errs, ValidationError{ItemID: it.ID, Description: fmt.Sprintf("category %q is a %s category", it.Category, cat.Kind)})
		}

		if it.Planned.IsNegative() || it.Actual.IsNegative() {
			errs = append(errs, ValidationError{ItemID: it.ID, Description: "amounts must not be negative"})
		}
		if it.VATPercent.IsNegative() || it.VATPercent.GreaterThan(hundred) {
			errs = append(errs, ValidationError{ItemID: it.ID, Description: fmt.Sprintf("vat percent %s out of range", it.VATPercent)})
		}
	}
	return errs
}
