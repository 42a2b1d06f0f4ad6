// Package httputil writes the JSON envelope shared by all API responses.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/Belphemur/ShowFinder/internal/config"
)

// Response is the envelope of every JSON API response.
type Response struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes data wrapped in an "ok" envelope.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Response{Status: "ok", Data: data})
}

// WriteError writes an "error" envelope.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	write(w, status, Response{
		Status: "error",
		Error: &ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

func write(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Msg("Failed to write JSON response")
	}
}
