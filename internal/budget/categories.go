package budget

import "github.com/stagebooks-dev/stagebooks/internal/model"

// Category is an entry in the event-production budget chart.
type Category struct {
	ID          string
	Name        string
	Kind        model.LineKind
	Description string
}

// DefaultCategories returns the default budget chart for an event producer.
func DefaultCategories() []Category {
	return []Category{
		{ID: "venue", Name: "Venue", Kind: model.LineCost, Description: "Hire, security deposit, cleaning"},
		{ID: "staff", Name: "Staff", Kind: model.LineCost, Description: "Crew, stewards, production office"},
		{ID: "technical", Name: "Technical", Kind: model.LineCost, Description: "Sound, lights, staging, power"},
		{ID: "catering", Name: "Catering", Kind: model.LineCost, Description: "Crew and artist catering"},
		{ID: "marketing", Name: "Marketing", Kind: model.LineCost, Description: "Advertising and promotion"},
		{ID: "logistics", Name: "Logistics", Kind: model.LineCost, Description: "Transport, accommodation, freight"},
		{ID: "tickets", Name: "Tickets", Kind: model.LineRevenue, Description: "Ticket sales net of fees"},
		{ID: "sponsorship", Name: "Sponsorship", Kind: model.LineRevenue},
		{ID: "merchandise", Name: "Merchandise", Kind: model.LineRevenue},
		{ID: "food-beverage", Name: "Food & Beverage", Kind: model.LineRevenue, Description: "Bar and food token sales"},
	}
}

// Categories provides in-memory lookup over a budget chart.
type Categories struct {
	all  []Category
	byID map[string]Category
}

// NewCategories creates a lookup over chart.
func NewCategories(chart []Category) *Categories {
	byID := make(map[string]Category, len(chart))
	for _, c := range chart {
		byID[c.ID] = c
	}
	return &Categories{all: chart, byID: byID}
}

// All returns the whole chart.
func (c *Categories) All() []Category {
	return c.all
}

// Get returns a category by id.
func (c *Categories) Get(id string) (Category, bool) {
	cat, ok := c.byID[id]
	return cat, ok
}

// Exists reports whether a category id is in the chart.
func (c *Categories) Exists(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// ByKind returns the categories on one side of the budget.
func (c *Categories) ByKind(kind model.LineKind) []Category {
	var result []Category
	for _, cat := range c.all {
		if cat.Kind == kind {
			result = append(result, cat)
		}
	}
	return result
}
