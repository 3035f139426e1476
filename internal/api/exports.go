package api

import (
	"net/http"
	"path/filepath"

	"github.com/stagebooks-dev/stagebooks/internal/api/response"
	"github.com/stagebooks-dev/stagebooks/internal/export"
	"github.com/stagebooks-dev/stagebooks/internal/validate"
)

type exportRequest struct {
	Module    string            `json:"module"`
	Submodule string            `json:"submodule"`
	Filters   map[string]string `json:"filters"`
	Data      any               `json:"data"`
}

type exportResponse struct {
	File   string        `json:"file"`
	Format export.Format `json:"format"`
}

// Export writes the posted data to the export directory.
// Query: format=json|xlsx|pdf, event=<slug>.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	var req exportRequest
	if !decode(w, r, &req) {
		return
	}
	var errs validate.Errors
	errs.Required("module", req.Module)
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	path, err := h.Exporter.Export(r.Context(), export.Payload{
		ExportedAt: h.now(),
		ExportedBy: h.ExportedBy,
		Module:     req.Module,
		Submodule:  req.Submodule,
		Filters:    req.Filters,
		Data:       req.Data,
	}, format, r.URL.Query().Get("event"))
	if err != nil {
		h.logger().Error("export failed", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Export written", exportResponse{File: filepath.Base(path), Format: format})
}
