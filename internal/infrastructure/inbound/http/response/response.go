package response

import (
	"encoding/json"
	"net/http"
)

// Error kinds carried in the "error" field of every failure body.
const (
	KindValidation   = "ValidationError"
	KindNotFound     = "NotFound"
	KindForbidden    = "Forbidden"
	KindUnauthorized = "Unauthorized"
	KindInternal     = "InternalError"
)

type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type MessageBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func WriteError(w http.ResponseWriter, status int, kind, message string) {
	WriteJSON(w, status, ErrorBody{Error: kind, Message: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, KindValidation, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, KindUnauthorized, message)
}

func Internal(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, KindInternal, "internal server error")
}
