package health

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Prober checks that a source URL is reachable.
type Prober interface {
	Probe(ctx context.Context, url string, timeout time.Duration) error
}

var _ Prober = (*HTTPProber)(nil)

// HTTPProber issues a HEAD request, following redirects. Any status below 400
// counts as reachable.
type HTTPProber struct {
	httpClient *http.Client
	userAgent  string
}

func NewHTTPProber(httpClient *http.Client, userAgent string) *HTTPProber {
	return &HTTPProber{httpClient: httpClient, userAgent: userAgent}
}

func (p *HTTPProber) Probe(ctx context.Context, url string, timeout time.Duration) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return nil
}
