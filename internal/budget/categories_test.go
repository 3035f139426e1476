package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagebooks-dev/stagebooks/internal/model"
)

func TestDefaultCategories(t *testing.T) {
	chart := DefaultCategories()
	require.NotEmpty(t, chart)

	ids := make(map[string]bool)
	for _, c := range chart {
		assert.False(t, ids[c.ID], "duplicate category %s", c.ID)
		ids[c.ID] = true
		assert.NotEmpty(t, c.Name, "category %s missing name", c.ID)
		assert.NotEmpty(t, c.Kind, "category %s missing kind", c.ID)
	}
	assert.True(t, ids["venue"])
	assert.True(t, ids["tickets"])
}

func TestCategoriesLookup(t *testing.T) {
	cats := NewCategories(DefaultCategories())

	c, ok := cats.Get("technical")
	assert.True(t, ok)
	assert.Equal(t, "Technical", c.Name)

	_, ok = cats.Get("fireworks")
	assert.False(t, ok)
	assert.True(t, cats.Exists("catering"))
	assert.False(t, cats.Exists("fireworks"))

	assert.Len(t, cats.ByKind(model.LineCost), 6)
	assert.Len(t, cats.ByKind(model.LineRevenue), 4)
	assert.Len(t, cats.All(), 10)
}

func TestValidateItems(t *testing.T) {
	cats := NewCategories(DefaultCategories())

	good := []model.LineItem{line("venue", "ev-1", "10", "10")}
	assert.Empty(t, ValidateItems(good, model.LineCost, cats))

	bad := line("tickets", "ev-1", "10", "-1")
	unknown := line("fireworks", "ev-1", "10", "10")
	dup := good[0]

	errs := ValidateItems([]model.LineItem{good[0], bad, unknown, dup}, model.LineCost, cats)
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	assert.Len(t, errs, 4, "%v", msgs)
	assert.Contains(t, errs[0].Description, "revenue category")
	assert.Contains(t, errs[1].Description, "negative")
	assert.Contains(t, errs[2].Description, "unknown category")
	assert.Equal(t, "duplicate id", errs[3].Description)
}
