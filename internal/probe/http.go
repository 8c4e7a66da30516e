package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTP issues a GET to url. Any 2xx or 3xx status counts as success.
func HTTP(ctx context.Context, url string, timeout time.Duration) (bool, time.Duration, error) {
	client := http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, 0, fmt.Errorf("build http request: %w", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)

	if err != nil {
		return false, 0, fmt.Errorf("http get %s: %w", url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return true, latency, nil
	}
	return false, latency, fmt.Errorf("http get %s: status %d", url, resp.StatusCode)
}
