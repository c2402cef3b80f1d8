package items

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"quickaction/internal/domain"
)

// Source provides the dynamic part of the item list
type Source interface {
	Fetch(ctx context.Context) ([]domain.WireItem, error)
}

// HTTPSource fetches a JSON array of items with a GET request
type HTTPSource struct {
	URL     string
	Headers map[string]string
	Client  *http.Client
}

// NewHTTPSource creates a source for url. timeout bounds the whole request.
func NewHTTPSource(url string, headers map[string]string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:     url,
		Headers: headers,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Fetch performs the request and decodes the response body
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.WireItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %s: unexpected status %s: %s", s.URL, resp.Status, body)
	}

	var wire []domain.WireItem
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode items from %s: %w", s.URL, err)
	}
	return wire, nil
}
