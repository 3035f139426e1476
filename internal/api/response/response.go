// Package response writes the JSON envelope every API endpoint returns.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stagebooks-dev/stagebooks/internal/validate"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. For validation failures Fields
// lists every problem in order and Details keeps the first per field.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Fields  []FieldIssue      `json:"fields,omitempty"`
}

// FieldIssue is one entry of a 422 response.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeJSON encodes before touching w, so an encoding failure still yields a
// well-formed 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, payload Response) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(failure("ENCODING_ERROR", "Failed to encode response"))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func failure(code, message string) Response {
	return Response{Error: &ErrorDetail{Code: code, Message: message}}
}

func Success(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func BadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, failure("BAD_REQUEST", message))
}

// ValidationError answers 422 with one entry per field problem in errs.
func ValidationError(w http.ResponseWriter, errs validate.Errors) {
	resp := failure("VALIDATION_ERROR", validationMessage(len(errs)))
	resp.Error.Details = errs.ToMap()
	resp.Error.Fields = make([]FieldIssue, len(errs))
	for i, e := range errs {
		resp.Error.Fields[i] = FieldIssue{Field: e.Field, Message: e.Message}
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func validationMessage(n int) string {
	if n == 1 {
		return "Validation failed: 1 invalid field"
	}
	return fmt.Sprintf("Validation failed: %d invalid fields", n)
}

func NotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, failure("NOT_FOUND", message))
}

func InternalServerError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, failure("INTERNAL_SERVER_ERROR", message))
}
