package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// accountHeader carries the already-authenticated account identifier.
// Authentication itself happens upstream; this layer only propagates the
// identity.
const accountHeader = "X-Account-ID"

type accountKey struct{}

// WithAccount copies the account header into the request context. Routes
// that need an identity read it back with accountID.
func WithAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(accountHeader); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), accountKey{}, id))
		}
		next.ServeHTTP(w, r)
	})
}

func accountID(r *http.Request) string {
	id, _ := r.Context().Value(accountKey{}).(string)
	return id
}

// RequestLogger logs basic request details and latency.
func RequestLogger(next http.Handler, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
