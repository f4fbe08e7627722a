package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrNetwork is returned for any transport failure: connection errors
	// and non-2xx responses alike.
	ErrNetwork = errors.New("network error")

	// ErrInvalidURL is returned when a playlist or segment URI cannot be
	// resolved into an absolute URL.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrNoSegments is returned when a media playlist yields no segments.
	ErrNoSegments = errors.New("no segments found")

	// ErrSessionNotFound is returned when a session ID is unknown.
	ErrSessionNotFound = errors.New("session not found")
)

// Transport performs a single byte fetch. Implementations can be HTTP-based,
// file-based, or in-memory fakes for tests.
type Transport interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// headerMapTransport injects a fixed header set into every outgoing request.
type headerMapTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerMapTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}

// HTTPTransport is the production Transport. Per-request deadlines come from
// the client timeout and from the caller's context.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport returns an HTTPTransport with the given request timeout
// and optional extra headers applied to every request.
func NewHTTPTransport(timeout time.Duration, headers map[string]string) *HTTPTransport {
	var rt http.RoundTripper = http.DefaultTransport
	if len(headers) > 0 {
		rt = &headerMapTransport{headers: headers, base: http.DefaultTransport}
	}
	return &HTTPTransport{
		client: &http.Client{Timeout: timeout, Transport: rt},
	}
}

// Fetch implements Transport.Fetch. Any status outside 2xx is an ErrNetwork.
func (t *HTTPTransport) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, ErrInvalidURL)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %v: %w", url, err, ErrNetwork)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: status %d: %w", url, resp.StatusCode, ErrNetwork)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", url, err, ErrNetwork)
	}
	return data, nil
}
