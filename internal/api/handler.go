package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/stagebooks-dev/stagebooks/internal/api/response"
	"github.com/stagebooks-dev/stagebooks/internal/budget"
	"github.com/stagebooks-dev/stagebooks/internal/export"
	"github.com/stagebooks-dev/stagebooks/internal/payroll"
	"github.com/stagebooks-dev/stagebooks/internal/workspace"
)

// Handler holds what the routes need.
type Handler struct {
	Workspace     *workspace.Workspace
	Calculator    payroll.Calculator
	Categories    *budget.Categories
	Exporter      *export.Exporter
	ExportedBy    string
	SmallBusiness bool
	Now           func() time.Time
	Logger        *slog.Logger
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	return true
}
