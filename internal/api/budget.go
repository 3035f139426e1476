package api

import (
	"net/http"

	"github.com/stagebooks-dev/stagebooks/internal/api/response"
	"github.com/stagebooks-dev/stagebooks/internal/budget"
	"github.com/stagebooks-dev/stagebooks/internal/model"
	"github.com/stagebooks-dev/stagebooks/internal/validate"
)

type budgetRequest struct {
	Costs    []model.CostItem    `json:"costs"`
	Revenues []model.RevenueItem `json:"revenues"`
	EventID  string              `json:"eventId"`
}

type budgetResponse struct {
	Summary  budget.Summary           `json:"summary"`
	Costs    []budget.CategorySummary `json:"costsByCategory"`
	Revenues []budget.CategorySummary `json:"revenuesByCategory"`
}

// BudgetSummary rolls up the lines posted in the request body.
func (h *Handler) BudgetSummary(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decode(w, r, &req) {
		return
	}
	b := budget.Bundle{Costs: req.Costs, Revenues: req.Revenues}
	for i := range b.Costs {
		b.Costs[i] = budget.Recompute(b.Costs[i])
	}
	for i := range b.Revenues {
		b.Revenues[i] = budget.Recompute(b.Revenues[i])
	}
	if errs := b.Validate(h.Categories); len(errs) > 0 {
		response.ValidationError(w, lineErrors(errs))
		return
	}
	response.Success(w, budgetResponse{
		Summary:  budget.Summarize(b.Costs, b.Revenues, req.EventID),
		Costs:    budget.ByCategory(b.Costs, req.EventID),
		Revenues: budget.ByCategory(b.Revenues, req.EventID),
	})
}

// WorkspaceBudget rolls up the lines held in the workspace.
func (h *Handler) WorkspaceBudget(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("event")
	ws := h.Workspace
	response.Success(w, budgetResponse{
		Summary:  ws.Budgets.Summary(eventID),
		Costs:    budget.ByCategory(ws.CostItems.List(), eventID),
		Revenues: budget.ByCategory(ws.RevenueItems.List(), eventID),
	})
}

func (h *Handler) AddCost(w http.ResponseWriter, r *http.Request) {
	h.addLine(w, r, model.LineCost)
}

func (h *Handler) AddRevenue(w http.ResponseWriter, r *http.Request) {
	h.addLine(w, r, model.LineRevenue)
}

func (h *Handler) addLine(w http.ResponseWriter, r *http.Request, kind model.LineKind) {
	var item model.LineItem
	if !decode(w, r, &item) {
		return
	}
	item.ID = ""
	item = budget.Recompute(item)
	if errs := budget.ValidateItems([]model.LineItem{item}, kind, h.Categories); len(errs) > 0 {
		response.ValidationError(w, lineErrors(errs))
		return
	}

	st := h.Workspace.CostItems
	if kind == model.LineRevenue {
		st = h.Workspace.RevenueItems
	}
	response.Created(w, "Budget line added", st.Add(item))
}

func lineErrors(errs []budget.ValidationError) validate.Errors {
	out := make(validate.Errors, len(errs))
	for i, e := range errs {
		field := e.ItemID
		if field == "" {
			field = "line"
		}
		out[i] = validate.FieldError{Field: field, Message: e.Description}
	}
	return out
}
