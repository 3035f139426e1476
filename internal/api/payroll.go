package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/api/response"
	"github.com/stagebooks-dev/stagebooks/internal/model"
	"github.com/stagebooks-dev/stagebooks/internal/payroll"
)

type payrollRequest struct {
	Staff []model.StaffMember `json:"staff"`
}

type payrollResponse struct {
	Records []payroll.TaxRecord `json:"records"`
	Totals  payroll.Totals      `json:"totals"`
}

// Payroll calculates tax records for the posted staff, or for the workspace
// staff when none are posted.
func (h *Handler) Payroll(w http.ResponseWriter, r *http.Request) {
	var req payrollRequest
	if !decode(w, r, &req) {
		return
	}
	var records []payroll.TaxRecord
	if len(req.Staff) > 0 {
		records = h.Calculator.CalculateAll(req.Staff)
	} else {
		records = h.Workspace.Payroll(h.Calculator)
	}
	response.Success(w, payrollResponse{Records: records, Totals: payroll.Summarize(records)})
}

type taxRequest struct {
	Invoices      []model.Invoice `json:"invoices"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	SmallBusiness *bool           `json:"smallBusiness"`
}

// TaxSummary computes VAT due and CIT. The small-business flag defaults to
// the configured one.
func (h *Handler) TaxSummary(w http.ResponseWriter, r *http.Request) {
	var req taxRequest
	if !decode(w, r, &req) {
		return
	}
	small := h.SmallBusiness
	if req.SmallBusiness != nil {
		small = *req.SmallBusiness
	}
	response.Success(w, h.Calculator.TaxSummary(req.Invoices, req.TotalProfit, small))
}
