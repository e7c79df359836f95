package mediaservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUnsplashURL = "https://api.unsplash.com"
	maxResponseBytes   = 2 << 20
)

func NewUnsplashClient(cfg UnsplashConfig) *UnsplashClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultUnsplashURL
	}

	return &UnsplashClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchPhotos returns the provider's landscape search response body unchanged.
func (c *UnsplashClient) SearchPhotos(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("orientation", "landscape")

	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/search/photos?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Client-ID "+c.cfg.AccessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, err
	}

	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("unsplash: response larger than %d bytes", maxResponseBytes)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash: unexpected status %d", resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("unsplash: invalid response body")
	}

	return json.RawMessage(body), nil
}
