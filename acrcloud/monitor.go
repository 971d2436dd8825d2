package acrcloud

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

// StreamMonitorConfig holds configuration for creating a StreamMonitor.
type StreamMonitorConfig struct {
	// ProjectAccessKey is the access key of the broadcast-monitoring
	// project the stream belongs to (not the account key).
	ProjectAccessKey string
	// StreamID identifies the monitored stream.
	StreamID string
	// Host is the monitoring API host. If empty, DefaultHost is used.
	Host string
	// ResultHost serves the monthly result archives. If empty,
	// DefaultResultHost is used.
	ResultHost string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is
	// used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// StreamMonitor reads recognition results for one monitored stream. These
// endpoints are unsigned; the project access key travels as a query
// parameter. All state is read-only after construction, so a
// StreamMonitor is safe for concurrent use. Text endpoints return the
// response body unparsed.
type StreamMonitor struct {
	accessKey  string
	streamID   string
	baseURL    string
	archiveURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewStreamMonitor creates a results client for one stream.
func NewStreamMonitor(config StreamMonitorConfig) (*StreamMonitor, error) {
	if config.ProjectAccessKey == "" {
		return nil, fmt.Errorf("acrcloud: ProjectAccessKey is required")
	}
	if config.StreamID == "" {
		return nil, fmt.Errorf("acrcloud: StreamID is required")
	}

	host := config.Host
	if host == "" {
		host = DefaultHost
	}
	resultHost := config.ResultHost
	if resultHost == "" {
		resultHost = DefaultResultHost
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &StreamMonitor{
		accessKey:  config.ProjectAccessKey,
		streamID:   config.StreamID,
		baseURL:    baseURL(host),
		archiveURL: baseURL(resultHost),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// StreamID returns the monitored stream's identifier.
func (m *StreamMonitor) StreamID() string {
	return m.streamID
}

// fetch issues one GET against the results endpoint with the access key
// and any extra query parameters.
func (m *StreamMonitor) fetch(ctx context.Context, extra url.Values) (string, error) {
	query := url.Values{}
	query.Set("access_key", m.accessKey)
	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	requestURL := fmt.Sprintf("%s/v1/monitor-streams/%s/results?%s",
		m.baseURL, url.PathEscape(m.streamID), query.Encode())
	body, err := do(ctx, m.httpClient, m.logger, http.MethodGet, requestURL, nil, nil)
	return string(body), err
}

// LastResults returns the most recent recognition the monitor detected.
func (m *StreamMonitor) LastResults(ctx context.Context) (string, error) {
	return m.fetch(ctx, nil)
}

// CurrentResults returns the last result including the "no result" state
// when the monitor currently detects nothing.
func (m *StreamMonitor) CurrentResults(ctx context.Context) (string, error) {
	return m.fetch(ctx, url.Values{"type": {"current"}})
}

// MultipleLastResults returns up to the last 100 recognitions. The server
// enforces the 1-100 range; no local validation.
func (m *StreamMonitor) MultipleLastResults(ctx context.Context, limit int) (string, error) {
	return m.fetch(ctx, url.Values{"limit": {strconv.Itoa(limit)}})
}

// DayResults returns a full UTC day of results within the last 30 days.
// date is in YYYYMMDD format. For the current day the results run up to
// the moment of the request.
func (m *StreamMonitor) DayResults(ctx context.Context, date string) (string, error) {
	return m.fetch(ctx, url.Values{"date": {date}})
}

// PeriodResults returns results for a window within the last 24 hours.
// begin and end are in YYYYMMDDHHMMSS format, UTC. An empty end is still
// sent and means "now" on the server side.
func (m *StreamMonitor) PeriodResults(ctx context.Context, begin, end string) (string, error) {
	return m.fetch(ctx, url.Values{"begin_time": {begin}, "end_time": {end}})
}

// MonthResults downloads the full-month result archive for any past
// month (YYYYMM format). The body is a zip archive, returned as opaque
// bytes; the archive package can list and extract it.
func (m *StreamMonitor) MonthResults(ctx context.Context, month string) ([]byte, error) {
	requestURL := fmt.Sprintf("%s/%s/%s/%s.zip",
		m.archiveURL,
		url.PathEscape(m.accessKey),
		url.PathEscape(m.streamID),
		url.PathEscape(month))
	return do(ctx, m.httpClient, m.logger, http.MethodGet, requestURL, nil, nil)
}
