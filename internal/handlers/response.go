package handlers

import (
	"encoding/json"
	"net/http"
)

// Envelope - единый формат ответа API
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, code int, data any) {
	respond(w, code, Envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, code int, message string) {
	respond(w, code, Envelope{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, code int, message string) {
	respond(w, code, Envelope{Success: false, Error: message})
}
