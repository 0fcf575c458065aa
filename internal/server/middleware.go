package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mpilhlt/dhamps-relay/internal/metrics"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const requestIDKey = contextKey("requestID")

// RequestIDHeader is read from requests and set on every response.
const RequestIDHeader = "X-Request-ID"

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestID keeps a caller supplied X-Request-ID or assigns a new UUID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// AccessLog writes one line per request and records the HTTP metrics.
// m may be nil.
func AccessLog(log *zap.Logger, m *metrics.Metrics, service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snoop := httpsnoop.CaptureMetrics(next, w, r)

		if m != nil {
			m.HTTPRequests.WithLabelValues(service, r.Method, strconv.Itoa(snoop.Code)).Inc()
			m.HTTPDuration.WithLabelValues(service, r.Method).Observe(snoop.Duration.Seconds())
		}

		log.Info("request",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("remote", r.RemoteAddr),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", snoop.Code),
			zap.Int64("bytes", snoop.Written),
			zap.Duration("duration", snoop.Duration),
		)
	})
}

// Wrap applies the middleware chain shared by both services:
// request id, access log and metrics, CORS.
func Wrap(next http.Handler, log *zap.Logger, m *metrics.Metrics, service string) http.Handler {
	return RequestID(AccessLog(log, m, service, CORS(next)))
}
