package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/teemow/taskmanager/internal/tasks"
)

// Detail messages for non-validation errors.
const (
	detailTaskNotFound     = "Task not found"
	detailNotFound         = "Not Found"
	detailMethodNotAllowed = "Method Not Allowed"
	detailInternal         = "Internal Server Error"
)

// Validation error types.
const (
	errTypeMissing        = "missing"
	errTypeStringType     = "string_type"
	errTypeBoolParsing    = "bool_parsing"
	errTypeBoolType       = "bool_type"
	errTypeIntParsing     = "int_parsing"
	errTypeJSONInvalid    = "json_invalid"
	errTypeModelAttrsType = "model_attributes_type"
)

// ErrorDetail is one entry of a 422 response.
type ErrorDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ErrorBody is the body of every error response.
// Detail is either a string or a list of ErrorDetail.
type ErrorBody struct {
	Detail any `json:"detail"`
}

func bodyLoc(field string) []any {
	return []any{"body", field}
}

func validationDetails(ve *tasks.ValidationError) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		details = append(details, ErrorDetail{Loc: bodyLoc(f.Field), Msg: f.Message, Type: f.Type})
	}
	return details
}

// errorResponse maps a domain error to the status and body the REST API answers with.
func errorResponse(err error) (int, ErrorBody) {
	var ve *tasks.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ErrorBody{Detail: validationDetails(ve)}
	case tasks.IsNotFound(err):
		return http.StatusNotFound, ErrorBody{Detail: detailTaskNotFound}
	default:
		return http.StatusInternalServerError, ErrorBody{Detail: detailInternal}
	}
}

// ToStatusError converts not-found and validation errors into the
// *StatusError the REST API would produce for them. Other errors, including
// existing *StatusError values, are returned unchanged.
func ToStatusError(err error) error {
	if err == nil {
		return nil
	}
	var se *StatusError
	if errors.As(err, &se) {
		return err
	}
	if !tasks.IsNotFound(err) && !tasks.IsValidation(err) {
		return err
	}

	code, body := errorResponse(err)
	raw, mErr := json.Marshal(body)
	if mErr != nil {
		return err
	}
	return &StatusError{StatusCode: code, Body: string(raw)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		status = http.StatusInternalServerError
		raw = []byte(`{"detail":"Internal Server Error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(raw)
}

func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, ErrorBody{Detail: detail})
}

// writeError writes the response for an error returned by a TaskService.
// A *StatusError is passed through verbatim.
func writeError(w http.ResponseWriter, err error) {
	var se *StatusError
	if errors.As(err, &se) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(se.StatusCode)
		_, _ = w.Write([]byte(se.Body))
		return
	}

	code, body := errorResponse(err)
	if code == http.StatusInternalServerError {
		slog.Error("task operation failed", "error", err)
	}
	writeJSON(w, code, body)
}
