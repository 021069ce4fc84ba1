package calendly

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL       = "https://api.calendly.com"
	maxResponseSizeBytes = 1 << 20
)

// Config holds the two credentials the scheduling-link integration needs.
// The integration is optional: it is active only when both are present.
type Config struct {
	EventTypeURL string        `envconfig:"EVENT_TYPE_URL" split_words:"true"`
	APIToken     string        `envconfig:"API_TOKEN" split_words:"true"`
	BaseURL      string        `envconfig:"BASE_URL" split_words:"true"`
	Timeout      time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Configured reports whether both credentials are set.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.EventTypeURL) != "" && strings.TrimSpace(c.APIToken) != ""
}

// Client mints single-use scheduling links with prefilled invitee details.
type Client struct {
	baseURL      string
	eventTypeURL string
	token        string
	httpClient   *http.Client
}

// SchedulingLink is the useful subset of Calendly's scheduling_links response.
type SchedulingLink struct {
	BookingURL string
	Raw        json.RawMessage
}

func NewClient(cfg Config) (*Client, error) {
	if !cfg.Configured() {
		return nil, errors.New("calendly event type url and api token are required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid calendly base url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:      baseURL,
		eventTypeURL: strings.TrimSpace(cfg.EventTypeURL),
		token:        strings.TrimSpace(cfg.APIToken),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type schedulingLinkRequest struct {
	Owner         string          `json:"owner"`
	OwnerType     string          `json:"owner_type"`
	MaxEventCount int             `json:"max_event_count"`
	Prefill       prefillsPayload `json:"prefill"`
}

type prefillsPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type schedulingLinkResponse struct {
	Resource struct {
		BookingURL    string `json:"booking_url"`
		SchedulingURL string `json:"scheduling_url"`
	} `json:"resource"`
}

// CreateSchedulingLink creates a one-off booking link prefilled with the
// invitee's name and email.
func (c *Client) CreateSchedulingLink(ctx context.Context, inviteeName, inviteeEmail string) (*SchedulingLink, error) {
	payload := schedulingLinkRequest{
		Owner:         c.eventTypeURL,
		OwnerType:     "EventType",
		MaxEventCount: 1,
		Prefill: prefillsPayload{
			Name:  inviteeName,
			Email: inviteeEmail,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal scheduling link request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scheduling_links", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build scheduling link request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute scheduling link request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read scheduling link response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("calendly api error %d: %s", resp.StatusCode, string(raw))
	}

	var parsed schedulingLinkResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode scheduling link response: %w", err)
	}

	bookingURL := parsed.Resource.BookingURL
	if bookingURL == "" {
		bookingURL = parsed.Resource.SchedulingURL
	}

	return &SchedulingLink{
		BookingURL: bookingURL,
		Raw:        json.RawMessage(raw),
	}, nil
}
