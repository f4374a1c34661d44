package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/intergeo/pkg/errors"
)

// ErrorBody is the JSON form of an error response.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Subject string      `json:"subject,omitempty"`
	Message string      `json:"message"`

	// Extra carries endpoint-specific context, such as import diagnostics.
	Extra any `json:"details,omitempty"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeMalformedDocument, errors.ErrCodeUnresolvedReference,
		errors.ErrCodeUnsupportedElement, errors.ErrCodeUnsupportedCoordinates, errors.ErrCodeUnsupportedConstraint:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// NewErrorBody builds the response body for err.
func NewErrorBody(err error) ErrorBody {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return ErrorBody{
		Code:    code,
		Subject: errors.GetSubject(err),
		Message: errors.UserMessage(err),
	}
}

// Error writes err as an ErrorBody with the status from StatusFor.
func Error(w http.ResponseWriter, err error) {
	ErrorWith(w, err, nil)
}

// ErrorWith is Error with additional details.
func ErrorWith(w http.ResponseWriter, err error, details any) {
	body := NewErrorBody(err)
	body.Extra = details
	JSON(w, StatusFor(body.Code), body)
}

// JSON writes v as indented JSON with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
