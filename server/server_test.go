package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	chatx "github.com/maticstudio/chat-agent/agent/chat"
	contractx "github.com/maticstudio/chat-agent/agent/contract"
)

type fakeChat struct {
	calls int
	reply string
	err   error
}

func (f *fakeChat) New(context.Context, openaisdk.ChatCompletionNewParams, ...option.RequestOption) (*openaisdk.ChatCompletion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &openaisdk.ChatCompletion{
		Choices: []openaisdk.ChatCompletionChoice{
			{Message: openaisdk.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func newTestServer(t *testing.T, cfg Config, fake *fakeChat) *Server {
	t.Helper()

	sessions := NewSessionManager(func() (*chatx.Agent, error) {
		return chatx.New(contractx.VariantScheduling, fake, "system",
			chatx.Config{Model: "gpt-4o-mini", Temperature: 0.7},
			chatx.WithMemory(),
		)
	})
	return New(cfg, sessions, nil)
}

func postChat(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestChatEndpoint(t *testing.T) {
	t.Parallel()

	fake := &fakeChat{reply: "We automate business processes."}
	srv := newTestServer(t, Config{}, fake)

	rec := postChat(t, srv, `{"message":"what do you do?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode[chatResponse](t, rec)
	if resp.Response != "We automate business processes." {
		t.Errorf("response = %q", resp.Response)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.SessionID == "" {
		t.Error("session_id not assigned")
	}

	// Same session id reuses the same agent.
	rec = postChat(t, srv, `{"message":"and pricing?","session_id":"`+resp.SessionID+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("second status = %d", rec.Code)
	}
	second := decode[chatResponse](t, rec)
	if second.SessionID != resp.SessionID {
		t.Errorf("session_id changed: %q -> %q", resp.SessionID, second.SessionID)
	}
	if srv.sessions.Len() != 1 {
		t.Errorf("sessions = %d, want 1", srv.sessions.Len())
	}
	if fake.calls != 2 {
		t.Errorf("model calls = %d, want 2", fake.calls)
	}
}

func TestChatEndpointEmptyMessage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Config{}, &fakeChat{reply: "unused"})

	for _, body := range []string{`{"message":"   "}`, `{}`, `not json`} {
		rec := postChat(t, srv, body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
		resp := decode[map[string]string](t, rec)
		if resp["status"] != "error" || resp["error"] == "" {
			t.Errorf("body %q: response = %v", body, resp)
		}
	}
}

func TestChatEndpointModelFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Config{}, &fakeChat{err: errors.New("upstream down")})

	rec := postChat(t, srv, `{"message":"hello"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	resp := decode[map[string]string](t, rec)
	if resp["status"] != "error" {
		t.Fatalf("response = %v", resp)
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Config{}, &fakeChat{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[map[string]any](t, rec)
	if resp["status"] != "healthy" {
		t.Errorf("status = %v", resp["status"])
	}
	if resp["database"] != "not_configured" {
		t.Errorf("database = %v", resp["database"])
	}
}

func TestAdminEndpointsRequireAPIKey(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Config{AdminAPIKey: "secret"}, &fakeChat{})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/leads"},
		{http.MethodGet, "/api/admin/analytics"},
		{http.MethodPut, "/api/admin/leads/jane@acme.com/status"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, strings.NewReader(`{"status":"contacted"}`))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s without key: status = %d, want 401", p.method, p.path, rec.Code)
		}

		req = httptest.NewRequest(p.method, p.path, strings.NewReader(`{"status":"contacted"}`))
		req.Header.Set("X-API-Key", "wrong")
		rec = httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s with wrong key: status = %d, want 401", p.method, p.path, rec.Code)
		}
	}
}

func TestAdminEndpointsLockedWithoutConfiguredKey(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Config{}, &fakeChat{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/leads", nil)
	req.Header.Set("X-API-Key", "")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 when no admin key is configured", rec.Code)
	}
}

func TestAdminLeadsWithoutDatabase(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Config{AdminAPIKey: "secret"}, &fakeChat{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/leads?limit=5", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[map[string]any](t, rec)
	if resp["count"] != float64(0) {
		t.Errorf("count = %v, want 0", resp["count"])
	}
}

func TestAdminLeadStatusNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, Config{AdminAPIKey: "secret"}, &fakeChat{})

	req := httptest.NewRequest(http.MethodPut, "/api/admin/leads/jane@acme.com/status", strings.NewReader(`{"status":"contacted"}`))
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 without a database", rec.Code)
	}
}

func TestSessionManagerDrop(t *testing.T) {
	t.Parallel()

	sessions := NewSessionManager(func() (*chatx.Agent, error) {
		return chatx.New(contractx.VariantSimple, &fakeChat{}, "system",
			chatx.Config{Model: "gpt-4o-mini"})
	})

	_, id, err := sessions.Acquire("")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if id == "" {
		t.Fatal("Acquire() assigned empty session id")
	}
	if sessions.Len() != 1 {
		t.Fatalf("Len() = %d", sessions.Len())
	}

	sessions.Drop(id)
	if sessions.Len() != 0 {
		t.Fatalf("Len() after Drop = %d", sessions.Len())
	}
}
