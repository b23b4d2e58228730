package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggingMiddleware_IncludesRequestID(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequestIDMiddleware()(LoggingMiddleware(logger)(inner))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := logBuf.String()
	if !strings.Contains(out, "request_id=req-123") {
		t.Errorf("log output %q missing request_id attribute", out)
	}
	if !strings.Contains(out, "status=204") {
		t.Errorf("log output %q missing captured status", out)
	}
}

func TestRecoveryMiddleware_LogsRequestID(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := RequestIDMiddleware()(RecoveryMiddleware(logger)(inner))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-456")
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if out := logBuf.String(); !strings.Contains(out, "request_id=req-456") {
		t.Errorf("panic log %q missing request_id attribute", out)
	}
}
