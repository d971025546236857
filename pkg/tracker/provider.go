package tracker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RequestOptions carries per-request settings for a DataProvider.
type RequestOptions struct {
	Headers map[string]string
}

// DataProvider fetches raw carrier payloads.
// Implementations must return an error for anything that is not a successful
// response so that callers can tell a transport failure from an odd body.
type DataProvider interface {
	Fetch(ctx context.Context, url string, opts RequestOptions) (string, error)
}

// ResponseError reports a non-2xx answer from the carrier endpoint.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// HTTPDataProvider is the production DataProvider backed by net/http.
type HTTPDataProvider struct {
	httpClient *http.Client
	userAgent  string
}

// HTTPDataProviderConfig holds configuration for the HTTP provider.
type HTTPDataProviderConfig struct {
	Timeout   time.Duration
	UserAgent string
}

// NewHTTPDataProvider creates a new HTTP-based DataProvider.
func NewHTTPDataProvider(cfg HTTPDataProviderConfig) *HTTPDataProvider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPDataProvider{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: cfg.UserAgent,
	}
}

// NewHTTPDataProviderWithClient creates a DataProvider around an existing http.Client.
func NewHTTPDataProviderWithClient(client *http.Client) *HTTPDataProvider {
	return &HTTPDataProvider{httpClient: client}
}

// Fetch performs a GET request and returns the response body.
func (p *HTTPDataProvider) Fetch(ctx context.Context, url string, opts RequestOptions) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ResponseError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return string(body), nil
}

var _ DataProvider = (*HTTPDataProvider)(nil)
