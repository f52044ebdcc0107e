// README: Shared JSON-over-HTTP plumbing for the REST providers (per-call timeouts, status capture).
package maps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxBodyBytes caps how much of an upstream answer is read into memory.
const maxBodyBytes = 8 << 20

// Timeouts bounds each upstream call type.
type Timeouts struct {
	Geocode    time.Duration
	Directions time.Duration
	Reverse    time.Duration
}

// DefaultTimeouts mirrors the provider defaults documented in config.
var DefaultTimeouts = Timeouts{
	Geocode:    20 * time.Second,
	Directions: 30 * time.Second,
	Reverse:    10 * time.Second,
}

// ProviderConfig holds what every adapter needs to reach its upstream.
type ProviderConfig struct {
	APIKey     string
	BaseURL    string
	Timeouts   Timeouts
	HTTPClient *http.Client
}

type httpClient struct {
	provider string
	client   *http.Client
	logger   *zap.Logger
}

func newHTTPClient(provider string, c *http.Client, logger *zap.Logger) *httpClient {
	if c == nil {
		c = &http.Client{}
	}
	return &httpClient{provider: provider, client: c, logger: logger}
}

// do sends req under timeout and returns the body of a 200 answer. Any
// other outcome is a *ProviderError; classify marks it unroutable.
func (c *httpClient) do(ctx context.Context, endpoint string, timeout time.Duration, req *http.Request, classify func(status int, body string) bool) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, &ProviderError{Provider: c.provider, Endpoint: endpoint, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ProviderError{Provider: c.provider, Endpoint: endpoint, StatusCode: resp.StatusCode, Body: fmt.Sprintf("read body: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("provider request failed",
			zap.String("provider", c.provider),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", trim(string(body), 500)),
		)
		pe := &ProviderError{Provider: c.provider, Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
		if classify != nil {
			pe.Unroutable = classify(resp.StatusCode, pe.Body)
		}
		return nil, pe
	}
	return body, nil
}
