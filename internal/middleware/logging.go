package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"sms-ingest/internal/common/logging"
	"sms-ingest/internal/metrics"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LogRecord collects extra fields a handler wants on the request's access
// log line, e.g. the webhook outcome or the message ID.
type LogRecord struct {
	mu     sync.Mutex
	fields []logging.Field
}

func (r *LogRecord) add(fields ...logging.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields = append(r.fields, fields...)
}

func (r *LogRecord) snapshot() []logging.Field {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]logging.Field(nil), r.fields...)
}

type logRecordKey struct{}

// RecordFields attaches fields to the access log line for the current
// request. It is a no-op outside the logging middleware.
func RecordFields(ctx context.Context, fields ...logging.Field) {
	if record, ok := ctx.Value(logRecordKey{}).(*LogRecord); ok {
		record.add(fields...)
	}
}

// Logging assigns each request an ID, logs method, path, status and latency
// when it completes, and feeds the request metrics.
func Logging(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := uuid.New().String()
			record := &LogRecord{}

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			ctx = context.WithValue(ctx, logRecordKey{}, record)

			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			latency := time.Since(start)

			if m != nil {
				m.ObserveRequest(r.URL.Path, wrapped.statusCode, float64(latency.Milliseconds()))
			}

			fields := []logging.Field{
				{Key: "request_id", Value: requestID},
				{Key: "method", Value: r.Method},
				{Key: "path", Value: r.URL.Path},
				{Key: "status", Value: wrapped.statusCode},
				{Key: "latency_ms", Value: latency.Milliseconds()},
				{Key: "remote_addr", Value: r.RemoteAddr},
			}
			fields = append(fields, record.snapshot()...)

			if wrapped.statusCode >= 500 {
				logging.Error("request completed", nil, fields...)
			} else if wrapped.statusCode >= 400 {
				logging.Warn("request completed", fields...)
			} else {
				logging.Info("request completed", fields...)
			}
		})
	}
}
