package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ipatlas/geotrace/internal/config"
)

// IPInfoClient resolves IPs through the ipinfo.io geo endpoint. A single
// outbound GET per call, bounded by the configured timeout, no retries.
type IPInfoClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewIPInfoClient(cfg *config.Config) *IPInfoClient {
	timeout := cfg.GeoTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &IPInfoClient{
		baseURL:    cfg.IPInfoBaseURL,
		token:      cfg.IPInfoToken,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *IPInfoClient) Resolve(ctx context.Context, ip string) (*GeoData, error) {
	endpoint := fmt.Sprintf("%s/%s/geo?token=%s", c.baseURL, url.PathEscape(ip), url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts land here too.
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: status %d", ErrNoData, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	var geo GeoData
	if err := json.Unmarshal(body, &geo); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &geo, nil
}
