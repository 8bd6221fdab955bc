package middleware

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/cmyk-lab/pkg/handlers"
)

// Recover returns middleware that converts a handler panic into a JSON 500 response.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error(
						"panic recovered",
						"error", rec,
						"method", r.Method,
						"uri", r.URL.RequestURI(),
						"trace_id", GetTraceID(r.Context()),
					)
					handlers.RespondJSON(w, http.StatusInternalServerError, handlers.ErrorResponse{
						Error: "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
