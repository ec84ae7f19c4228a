package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
)

const (
	// DevelopmentURL is where the provider service listens during local development.
	DevelopmentURL = "http://localhost:8000"
	// ProductionURL is the hosted provider service.
	ProductionURL = "https://homesolutions-backend.onrender.com"
)

// Client fetches provider records from the marketplace backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a backend client. An empty base URL falls back to DevelopmentURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = DevelopmentURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL reports the resolved endpoint root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List implements catalog.ProviderSource.
func (c *Client) List(ctx context.Context) ([]catalog.Provider, error) {
	var providers []catalog.Provider
	if err := c.getJSON(ctx, c.baseURL+"/providers", &providers); err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	if providers == nil {
		providers = []catalog.Provider{}
	}
	for i := range providers {
		providers[i] = sanitize(providers[i])
	}
	return providers, nil
}

// Get implements catalog.ProviderSource.
func (c *Client) Get(ctx context.Context, id string) (catalog.Provider, error) {
	endpoint := fmt.Sprintf("%s/providers/%s", c.baseURL, url.PathEscape(id))
	var provider catalog.Provider
	if err := c.getJSON(ctx, endpoint, &provider); err != nil {
		return catalog.Provider{}, fmt.Errorf("get provider %s: %w", id, err)
	}
	return sanitize(provider), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build backend request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return catalog.ErrProviderNotFound
	}
	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("backend request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read backend response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// sanitize drops coordinates the backend sent out of range so they never reach the distance math.
func sanitize(p catalog.Provider) catalog.Provider {
	if p.Coordinates != nil && !p.Coordinates.Valid() {
		p.Coordinates = nil
	}
	if p.Reviews == nil {
		p.Reviews = []catalog.Review{}
	}
	return p
}
