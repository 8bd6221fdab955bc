package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// TraceIDKey is the context key holding the request trace identifier.
const TraceIDKey contextKey = "trace_id"

// TraceIDHeader carries the trace identifier on requests and responses.
const TraceIDHeader = "X-Trace-ID"

// TraceID returns middleware that propagates the caller's X-Trace-ID header
// or assigns a new UUID when none is present.
func TraceID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), TraceIDKey, traceID)
			w.Header().Set(TraceIDHeader, traceID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTraceID returns the trace identifier stored in ctx, or an empty string.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}
