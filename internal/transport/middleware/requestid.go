package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/edurede/school-registry/pkg/logger"
)

// RequestID tags every request with a trace id, propagated via the context
// logger and the X-Trace-ID response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
