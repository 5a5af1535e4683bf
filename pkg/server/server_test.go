package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/folio/pkg/observability"
	"github.com/matzehuels/folio/pkg/style"
)

func newServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	s, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestStyles(t *testing.T) {
	s := newServer(t)

	rec := do(t, s, http.MethodGet, "/styles", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var names []string
	for _, st := range decode[[]StyleResponse](t, rec) {
		names = append(names, st.Name)
	}
	want := style.MustDefault().AvailableStyles()
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}

	rec = do(t, s, http.MethodGet, "/styles/h1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("h1 status = %d", rec.Code)
	}
	h1 := decode[StyleResponse](t, rec)
	if h1.Definition.FontStyle != style.Bold || h1.Definition.Size != 25 {
		t.Errorf("h1 = %+v", h1.Definition)
	}

	rec = do(t, s, http.MethodGet, "/styles/h9", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown style status = %d", rec.Code)
	}
	if e := decode[ErrorResponse](t, rec); e.Code != "UNKNOWN_STYLE" {
		t.Errorf("error = %+v", e)
	}
}

func TestRenderAndFetch(t *testing.T) {
	s := newServer(t)
	rec := do(t, s, http.MethodPost, "/render",
		`{"markdown":"# Title\n\nBody","footer":"Page footer","formats":["svg","json"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	doc := decode[DocumentResponse](t, rec)
	if doc.Pages != 1 || len(doc.Links) != 2 {
		t.Errorf("doc = %+v", doc)
	}
	if loc := rec.Header().Get("Location"); loc != "/documents/"+doc.ID {
		t.Errorf("Location = %q", loc)
	}

	rec = do(t, s, http.MethodGet, "/documents/"+doc.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metadata status = %d", rec.Code)
	}
	if diff := cmp.Diff([]string{"svg", "json"}, decode[DocumentResponse](t, rec).Formats); diff != "" {
		t.Errorf("formats (-want +got):\n%s", diff)
	}

	rec = do(t, s, http.MethodGet, doc.Links["svg"], "")
	if rec.Code != http.StatusOK {
		t.Fatalf("svg status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("Page footer")) {
		t.Error("svg lacks footer text")
	}

	rec = do(t, s, http.MethodGet, "/documents/"+doc.ID+"?format=pdf", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing format status = %d", rec.Code)
	}
}

func TestRenderErrors(t *testing.T) {
	s := newServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"markdown":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"colour":"red"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", `{"formats":["docx"]}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"negative body", `{"settings":{"header":{"height":2000}},"formats":["json"]}`, http.StatusUnprocessableEntity, "CONFIGURATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/render", tt.body)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body)
			}
			if e := decode[ErrorResponse](t, rec); e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
		})
	}
}

func TestDocumentLookupErrors(t *testing.T) {
	s := newServer(t)
	if rec := do(t, s, http.MethodGet, "/documents/not-a-uuid", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/documents/6f1c1f1e-8d4b-4f6a-9d0e-2b7c1a0e5f11", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	s := newServer(t, WithRateLimit(2, time.Minute))
	var codes []int
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, s, http.MethodGet, "/healthz", "").Code)
	}
	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
}

type httpHooks struct {
	observability.NoopHTTPHooks
	statuses []int
	errors   int
}

func (h *httpHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func (h *httpHooks) OnError(context.Context, string, string, error) { h.errors++ }

func TestHTTPHooks(t *testing.T) {
	hooks := &httpHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newServer(t)
	do(t, s, http.MethodGet, "/healthz", "")
	do(t, s, http.MethodGet, "/styles/nope", "")

	if diff := cmp.Diff([]int{http.StatusOK, http.StatusNotFound}, hooks.statuses); diff != "" {
		t.Errorf("statuses (-want +got):\n%s", diff)
	}
	if hooks.errors != 1 {
		t.Errorf("errors = %d, want 1", hooks.errors)
	}
}
