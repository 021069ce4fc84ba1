package calendly

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testConfig(baseURL string) Config {
	return Config{
		EventTypeURL: "https://api.calendly.com/event_types/abc",
		APIToken:     "token-123",
		BaseURL:      baseURL,
	}
}

func TestConfigured(t *testing.T) {
	t.Parallel()

	if (Config{}).Configured() {
		t.Error("empty config reported configured")
	}
	if (Config{APIToken: "t"}).Configured() {
		t.Error("token-only config reported configured")
	}
	if !testConfig("").Configured() {
		t.Error("full config reported unconfigured")
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("NewClient() accepted empty config")
	}
}

func TestCreateSchedulingLink(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/scheduling_links" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("Authorization = %q", got)
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload["owner"] != "https://api.calendly.com/event_types/abc" {
			t.Errorf("owner = %v", payload["owner"])
		}
		if payload["owner_type"] != "EventType" {
			t.Errorf("owner_type = %v", payload["owner_type"])
		}
		if payload["max_event_count"] != float64(1) {
			t.Errorf("max_event_count = %v", payload["max_event_count"])
		}
		prefill, _ := payload["prefill"].(map[string]any)
		if prefill["name"] != "Jane Doe" || prefill["email"] != "jane@acme.com" {
			t.Errorf("prefill = %v", payload["prefill"])
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"resource":{"booking_url":"https://calendly.com/d/xyz"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	link, err := client.CreateSchedulingLink(context.Background(), "Jane Doe", "jane@acme.com")
	if err != nil {
		t.Fatalf("CreateSchedulingLink() error = %v", err)
	}
	if link.BookingURL != "https://calendly.com/d/xyz" {
		t.Fatalf("BookingURL = %q", link.BookingURL)
	}
}

func TestCreateSchedulingLinkFallsBackToSchedulingURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"resource":{"scheduling_url":"https://calendly.com/s/fallback"}}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	link, err := client.CreateSchedulingLink(context.Background(), "Jane", "jane@acme.com")
	if err != nil {
		t.Fatalf("CreateSchedulingLink() error = %v", err)
	}
	if link.BookingURL != "https://calendly.com/s/fallback" {
		t.Fatalf("BookingURL = %q", link.BookingURL)
	}
}

func TestCreateSchedulingLinkAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"title":"Unauthenticated"}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.CreateSchedulingLink(context.Background(), "Jane", "jane@acme.com")
	if err == nil {
		t.Fatal("CreateSchedulingLink() succeeded on 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Fatalf("error = %v, want status code", err)
	}
}
