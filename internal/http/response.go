package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"education-backend-go/internal/apperrors"
)

type ErrorDetail struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the boundary error shape shared with existing clients.
type ErrorResponse struct {
	StatusCode int           `json:"status_code"`
	Detail     []ErrorDetail `json:"detail"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	WriteJSON(w, status, ErrorResponse{
		StatusCode: status,
		Detail:     []ErrorDetail{{Msg: message}},
	})
}

// WriteDomainError translates a domain error to its fixed status and
// message. Unclassified errors are logged and reported as a generic
// internal error without leaking internals.
func WriteDomainError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.As(err); ok {
		if appErr.Challenge() {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		WriteJSON(w, appErr.Status(), ErrorResponse{
			StatusCode: appErr.Status(),
			Detail:     []ErrorDetail{{Msg: appErr.Message}},
		})
		return
	}
	log.Printf("internal error: %v", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}
