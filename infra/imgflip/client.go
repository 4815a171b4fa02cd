package imgflip

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Client is a thin HTTP wrapper for the Imgflip API.
// The listing endpoint is unauthenticated; the client only handles base
// URL construction and response draining.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an Imgflip API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// Get performs a GET request against the API.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API GET %s returned %d: %s", path, resp.StatusCode, string(data))
	}

	return data, nil
}
