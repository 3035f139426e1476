package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/api/response"
	"github.com/stagebooks-dev/stagebooks/internal/loan"
	"github.com/stagebooks-dev/stagebooks/internal/store"
)

func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans := h.Workspace.Loans
	if r.URL.Query().Get("deleted") == "true" {
		response.Success(w, loans.Deleted())
		return
	}
	response.Success(w, loans.List())
}

func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var p loan.Params
	if !decode(w, r, &p) {
		return
	}
	l, err := h.Workspace.AddLoan(p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	h.logger().Info("loan created", "id", l.ID, "lender", l.Lender)
	response.Created(w, "Loan created successfully", l)
}

func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	l, err := h.Workspace.Loans.Find(chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, l)
}

func (h *Handler) LoanPortfolio(w http.ResponseWriter, r *http.Request) {
	response.Success(w, loan.Portfolio(h.Workspace.Loans.All()))
}

// DeleteLoan soft-deletes a loan; ?hard=true removes it.
func (h *Handler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	hard := r.URL.Query().Get("hard") == "true"
	if !h.Workspace.Loans.Delete(id, hard) {
		response.HandleError(w, fmt.Errorf("loan %q: %w", id, store.ErrNotFound))
		return
	}
	response.SuccessWithMessage(w, "Loan deleted", nil)
}

func (h *Handler) RestoreLoan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.Workspace.Loans.Restore(id) {
		response.HandleError(w, fmt.Errorf("loan %q: %w", id, store.ErrNotFound))
		return
	}
	l, _ := h.Workspace.Loans.Get(id)
	response.SuccessWithMessage(w, "Loan restored", l)
}

type repaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

func (h *Handler) RepayLoan(w http.ResponseWriter, r *http.Request) {
	var req repaymentRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Date.IsZero() {
		req.Date = h.now()
	}
	l, err := h.Workspace.RepayLoan(chi.URLParam(r, "id"), req.Amount, req.Date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Repayment recorded", l)
}

func (h *Handler) DefaultLoan(w http.ResponseWriter, r *http.Request) {
	l, err := h.Workspace.DefaultLoan(chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Loan marked as defaulted", l)
}
