// Package handlers writes the JSON bodies shared by the API routes.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// encodeFailure is sent when a response value cannot be marshalled.
const encodeFailure = `{"error":"Failed to encode response"}`

// ErrorResponse is the JSON envelope written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON writes data as JSON with the given status. The body is
// marshalled before the header is sent, so a value that cannot be encoded
// becomes a 500 with the standard error envelope.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(encodeFailure)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// RespondError writes err as the response message.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logFailure(logger, status, err)
	RespondJSON(w, status, ErrorResponse{Error: err.Error()})
}

// RespondOpaque writes public as the response message and keeps cause in
// the server log.
func RespondOpaque(w http.ResponseWriter, logger *slog.Logger, status int, public, cause error) {
	logFailure(logger, status, cause)
	RespondJSON(w, status, ErrorResponse{Error: public.Error()})
}

// logFailure records client rejections at warn and server failures at error.
func logFailure(logger *slog.Logger, status int, err error) {
	if status < http.StatusInternalServerError {
		logger.Warn("request rejected", "error", err, "status", status)
		return
	}
	logger.Error("request failed", "error", err, "status", status)
}
