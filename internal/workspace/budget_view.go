package workspace

import (
	"sync"

	"github.com/stagebooks-dev/stagebooks/internal/budget"
	"github.com/stagebooks-dev/stagebooks/internal/bus"
	"github.com/stagebooks-dev/stagebooks/internal/model"
)

// BudgetView caches budget summaries per event. Any change to cost or
// revenue lines, or to the events they belong to, drops the cache.
type BudgetView struct {
	w *Workspace

	mu      sync.Mutex
	cache   map[string]budget.Summary
	builds  int
	changes int
}

func newBudgetView(w *Workspace) *BudgetView {
	v := &BudgetView{w: w, cache: make(map[string]budget.Summary)}
	w.Bus.Subscribe(model.KindCostItem, v.invalidate)
	w.Bus.Subscribe(model.KindRevenueItem, v.invalidate)
	return v
}

func (v *BudgetView) invalidate(bus.Change) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.changes++
	clear(v.cache)
}

// Summary returns the budget roll-up for eventID, or for every event when
// eventID is empty.
func (v *BudgetView) Summary(eventID string) budget.Summary {
	v.mu.Lock()
	if s, ok := v.cache[eventID]; ok {
		v.mu.Unlock()
		return s
	}
	seen := v.changes
	v.mu.Unlock()

	s := budget.Summarize(v.w.CostItems.List(), v.w.RevenueItems.List(), eventID)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.builds++
	// a change landed while summarizing; serve the result but don't keep it
	if v.changes == seen {
		v.cache[eventID] = s
	}
	return s
}

// Stats reports how many summaries were computed and how many changes were
// seen.
func (v *BudgetView) Stats() (builds, changes int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.builds, v.changes
}
