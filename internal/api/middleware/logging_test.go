package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestLogging(t *testing.T) {
	t.Run("Generates Correlation ID", func(t *testing.T) {
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotNil(t, middleware.LoggerFromContext(r.Context()))
			w.WriteHeader(http.StatusTeapot)
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

		assert.Equal(t, http.StatusTeapot, recorder.Code)
		_, err := uuid.Parse(recorder.Header().Get("X-Request-ID"))
		require.NoError(t, err)
	})

	t.Run("Keeps Caller Correlation ID", func(t *testing.T) {
		handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, "abc-123", recorder.Header().Get("X-Request-ID"))
	})
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	assert.NotNil(t, middleware.LoggerFromContext(t.Context()))
}

func TestLoggingRecordsTraceAndStatus(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	handler := middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req = req.WithContext(trace.ContextWithSpanContext(req.Context(), sc))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`)
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"status":502`)
	assert.Contains(t, out, `"bytes":13`)
}
