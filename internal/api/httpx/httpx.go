package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/digibank/backend/internal/apperr"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess wraps named payloads in the {"success":true,...}
// envelope the API contract promises on every non-error response.
func WriteSuccess(w http.ResponseWriter, status int, kv map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range kv {
		body[k] = v
	}
	WriteJSON(w, status, body)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteAppErr maps a tagged service error to its HTTP status and body.
// Untagged errors become an opaque 500.
func WriteAppErr(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	kind := apperr.KindOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	WriteError(w, status, string(kind), msg, nil)
}

// Decode parses a JSON body; a malformed body is a validation error.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}
