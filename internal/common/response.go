package common

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Envelope is the canonical response wrapper. Successful responses carry
// Error=false and Message="SUCCESS"; handled failures carry Error=true, the
// human-readable message, and a null response.
type Envelope struct {
	Error    bool   `json:"error"`
	Message  string `json:"message"`
	Response any    `json:"response"`
}

// JSON writes the provided payload wrapped in the success envelope.
func JSON(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, Envelope{Error: false, Message: "SUCCESS", Response: payload})
}

// JSONError renders a handled failure using the canonical envelope shape.
func JSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Error: true, Message: message, Response: nil})
}

// WriteError maps an error to the envelope, honouring AppError status codes.
// Unrecognised errors surface as a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		JSONError(w, status, appErr.Message)
		return
	}
	JSONError(w, http.StatusInternalServerError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
