// Package acrcloud is a client for ACRCloud's audio-fingerprinting web
// API. Console holds account credentials and manages projects and stream
// monitors over signed requests; StreamMonitor reads recognition results
// for one monitored stream. Both return the raw response body; parsing
// the JSON is the caller's concern (the library package layers typed
// parsing on top).
package acrcloud

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Default hosts. The monthly archive lives on a separate host from the
// rest of the API.
const (
	DefaultHost       = "api.acrcloud.com"
	DefaultResultHost = "monitoring-result.acrcloud.com"
)

// ServerError reports a non-2xx response. The response body still reaches
// the caller untouched alongside the error, so application-level
// rejections (bad signature, unknown project, invalid region) stay
// distinguishable from transport failures without the client interpreting
// status codes any further.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("acrcloud: server returned %d: %s", e.StatusCode, e.Body)
}

// baseURL normalizes a configured host into a base URL. A bare host gets
// the https scheme; a value that already carries a scheme is kept as-is
// so tests can point the client at a local server.
func baseURL(host string) string {
	if strings.Contains(host, "://") {
		return strings.TrimRight(host, "/")
	}
	return "https://" + host
}

// do issues one request and reads the full body. No retries. On a non-2xx
// status the body is returned together with a *ServerError.
func do(ctx context.Context, client *http.Client, logger *slog.Logger, method, requestURL string, header http.Header, form url.Values) ([]byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("acrcloud: building %s %s: %w", method, requestURL, err)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("acrcloud: %s %s: %w", method, requestURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("acrcloud: reading response for %s %s: %w", method, requestURL, err)
	}

	logger.Debug("request complete",
		"method", method, "url", requestURL,
		"status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return data, &ServerError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
