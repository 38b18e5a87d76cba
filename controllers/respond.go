package controllers

import (
	"encoding/json"
	"net/http"
)

type ContextKey string

const (
	UserIDKey  = ContextKey("userID")
	AdminIDKey = ContextKey("adminID")
)

type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

// writeError includes the cause as detail; stack traces stay in the server log.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := MessageResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}
