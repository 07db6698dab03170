package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response wrapper: exactly one of Data, Message or
// Error is populated alongside Success.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondData writes a success envelope carrying a payload.
// Marshaling happens before any header is written so an encoding failure
// never produces a half-sent success response.
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	writeEnvelope(w, status, Envelope{Success: true, Data: data})
}

// RespondMessage writes a success envelope carrying only a message.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, Envelope{Success: true, Message: message})
}

// RespondError writes a failure envelope.
func RespondError(w http.ResponseWriter, status int, detail string) {
	writeEnvelope(w, status, Envelope{Success: false, Error: detail})
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
