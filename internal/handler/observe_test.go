package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/msomdec/notebook/internal/handler"
	"github.com/msomdec/notebook/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	h := handler.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handler.RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected a UUID request ID, got %q", seen)
	}
	if got := w.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("expected response header %q, got %q", seen, got)
	}
}

func TestRequestID_ReusesValidHeader(t *testing.T) {
	want := uuid.NewString()
	var seen string
	h := handler.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handler.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", want)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != want {
		t.Fatalf("expected %q, got %q", want, seen)
	}
}

func TestRequestID_ReplacesGarbageHeader(t *testing.T) {
	var seen string
	h := handler.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handler.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "<script>")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen == "<script>" {
		t.Fatal("expected untrusted request ID to be replaced")
	}
}

func TestRecover_Returns500(t *testing.T) {
	h := handler.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := handler.SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for _, name := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if w.Header().Get(name) == "" {
			t.Fatalf("expected %s header to be set", name)
		}
	}
}

func TestInstrument_CountsRequests(t *testing.T) {
	h := handler.Instrument(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/note/{id}", "4xx")
	before := testutil.ToFloat64(counter)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/note/42", nil))

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("expected counter %v, got %v", before+1, got)
	}
}
