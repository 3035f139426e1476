package response

import (
	"errors"
	"net/http"

	"github.com/stagebooks-dev/stagebooks/internal/export"
	"github.com/stagebooks-dev/stagebooks/internal/loan"
	"github.com/stagebooks-dev/stagebooks/internal/store"
	"github.com/stagebooks-dev/stagebooks/internal/validate"
	"github.com/stagebooks-dev/stagebooks/internal/valuation"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validate.Errors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs)
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(w, err.Error())

	// Valuation domain errors
	case errors.Is(err, valuation.ErrRateNotAboveGrowth),
		errors.Is(err, valuation.ErrNoShares),
		errors.Is(err, valuation.ErrNoCashFlows):
		BadRequest(w, err.Error())

	// Loan domain errors
	case errors.Is(err, loan.ErrLoanClosed),
		errors.Is(err, loan.ErrInvalidAmount),
		errors.Is(err, loan.ErrExceedsBalance):
		BadRequest(w, err.Error())

	case errors.Is(err, export.ErrUnknownFormat):
		BadRequest(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
