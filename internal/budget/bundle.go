package budget

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/stagebooks-dev/stagebooks/internal/model"
)

// Bundle is a budget as read from a YAML file: the costs and revenues of one
// or more events.
type Bundle struct {
	Costs    []model.CostItem    `yaml:"costs" json:"costs"`
	Revenues []model.RevenueItem `yaml:"revenues" json:"revenues"`
}

// LoadBundle reads a budget YAML file. Lines without an id get one, and the
// derived variance fields are recomputed.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading budget: %w", err)
	}
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing budget: %w", err)
	}
	b.normalize()
	return &b, nil
}

func (b *Bundle) normalize() {
	for i := range b.Costs {
		b.Costs[i] = normalizeLine(b.Costs[i])
	}
	for i := range b.Revenues {
		b.Revenues[i] = normalizeLine(b.Revenues[i])
	}
}

func normalizeLine(it model.LineItem) model.LineItem {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	return Recompute(it)
}

// Validate checks both sides of the bundle against the chart.
func (b *Bundle) Validate(cats *Categories) []ValidationError {
	errs := ValidateItems(b.Costs, model.LineCost, cats)
	return append(errs, ValidateItems(b.Revenues, model.LineRevenue, cats)...)
}
