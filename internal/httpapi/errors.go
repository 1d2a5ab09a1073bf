package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobportal-api/internal/apperr"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// writeServiceError converts a service failure into the uniform error
// envelope. fallback is the status for unclassified errors: 400 almost
// everywhere, 500 on the listing scan.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback int) {
	status := fallback
	code := "bad_request"
	if fallback == http.StatusInternalServerError {
		code = "internal_error"
	}

	switch apperr.TypeOf(err) {
	case apperr.TypeNotFound:
		status, code = http.StatusNotFound, "not_found"
	case apperr.TypeUnauthorized:
		status, code = http.StatusUnauthorized, "unauthorized"
	case apperr.TypeConflict:
		status, code = http.StatusConflict, "conflict"
	case apperr.TypeInvalidInput:
		status, code = http.StatusBadRequest, "invalid_input"
	}

	message := err.Error()
	var ae *apperr.Error
	if errors.As(err, &ae) {
		message = ae.Message
	}
	WriteError(w, r, status, code, message)
}
