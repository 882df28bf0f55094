package httpapi

import (
	"encoding/json"
	"net/http"
)

// Envelope messages.
const (
	MsgProcessed = "Data processed successfully!"
	MsgFailed    = "Failed to process data"
)

// Envelope is the body of every reconciliation response.
type Envelope struct {
	IsSuccess   bool   `json:"isSuccess"`
	Data        any    `json:"data"`
	Message     string `json:"message"`
	ServiceName string `json:"service_name"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError answers request validation failures.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func respondMessage(w http.ResponseWriter, service, msg string) {
	respondJSON(w, http.StatusOK, Envelope{IsSuccess: false, Data: "", Message: msg, ServiceName: service})
}

func respondFailure(w http.ResponseWriter, service string) {
	respondJSON(w, http.StatusInternalServerError, Envelope{IsSuccess: false, Data: nil, Message: MsgFailed, ServiceName: service})
}
