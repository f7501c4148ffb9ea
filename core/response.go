package core

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodySize caps request bodies to keep JSON decoding bounded.
const maxBodySize = 1 << 20

// Envelope is the standard response shape.
type Envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail carries a machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes data wrapped in the response envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Data: data})
}

// Error writes an error envelope.
func Error(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Envelope{Error: &ErrorDetail{Code: code, Message: message}})
}

// InternalError writes the generic 500 envelope. Details stay in logs.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ErrInvalidBody is returned by Decode for unreadable or malformed
// request bodies.
var ErrInvalidBody = errors.New("core: invalid request body")

// Decode reads a bounded JSON request body into v. Unknown fields are
// rejected so client typos surface as errors instead of silently
// dropping data.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}
