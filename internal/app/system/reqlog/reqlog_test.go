package reqlog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddleware_LogsStatusAndRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := middleware.RequestID(Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/areas/missing", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want warn", e.Level)
	}
	fields := e.ContextMap()
	if fields["status"] != int64(404) {
		t.Errorf("status = %v", fields["status"])
	}
	if fields["bytes"] != int64(4) {
		t.Errorf("bytes = %v", fields["bytes"])
	}
	if fields["path"] != "/areas/missing" {
		t.Errorf("path = %v", fields["path"])
	}
	if fields["request_id"] == "" {
		t.Error("request_id empty")
	}
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	if got := logs.All()[0].ContextMap()["status"]; got != int64(200) {
		t.Errorf("status = %v, want 200", got)
	}
}
