package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// HTTPReader abstracts the HTTP transport so tests can point the client
// at a stub server and callers can swap in instrumented transports.
type HTTPReader interface {
	Read(ctx context.Context, rawURL string, params map[string]string) (string, error)
}

// HTTPServerError reports a non-2xx response from the vendor.
type HTTPServerError struct {
	Status int
}

func (e HTTPServerError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Status)
}

// httpReader is the production HTTPReader: a shared http.Client with a
// request timeout and a client-side rate limit so bursts of ticker
// lookups do not trip the vendor's throttling.
type httpReader struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPReader builds a reader with the given timeout and a sustained
// requests-per-second budget (burst of 1).
func NewHTTPReader(timeout time.Duration, rps float64) HTTPReader {
	return &httpReader{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (r *httpReader) Read(ctx context.Context, rawURL string, params map[string]string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %s: %w", rawURL, err)
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "investilearn/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", HTTPServerError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
