package acrcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ConsoleConfig holds configuration for creating a Console.
type ConsoleConfig struct {
	// AccessKey is the account access key from acrcloud.com.
	AccessKey string
	// AccessSecret is the account access secret.
	AccessSecret []byte
	// Host is the console API host. If empty, DefaultHost is used. A full
	// URL with scheme is also accepted (for tests against a local server).
	Host string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is
	// used. Connect/read timeouts belong to this client.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
	// Now supplies the wall-clock time signed into each request. If nil,
	// time.Now is used.
	Now func() time.Time
}

// Console is a client for the account-level console API: creating,
// updating, listing and deleting projects and stream monitors. Credentials
// are read-only after construction, so a Console is safe for concurrent
// use. Every method issues exactly one signed HTTPS request and returns
// the response body as text, unparsed.
type Console struct {
	accessKey    string
	accessSecret []byte
	baseURL      string
	httpClient   *http.Client
	logger       *slog.Logger
	now          func() time.Time
}

// NewConsole creates a console client.
func NewConsole(config ConsoleConfig) (*Console, error) {
	if config.AccessKey == "" {
		return nil, fmt.Errorf("acrcloud: AccessKey is required")
	}
	if len(config.AccessSecret) == 0 {
		return nil, fmt.Errorf("acrcloud: AccessSecret is required")
	}

	host := config.Host
	if host == "" {
		host = DefaultHost
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &Console{
		accessKey:    config.AccessKey,
		accessSecret: config.AccessSecret,
		baseURL:      baseURL(host),
		httpClient:   httpClient,
		logger:       logger,
		now:          now,
	}, nil
}

// signedHeader builds the four authentication headers for one request.
// signMethod is the method covered by the signature, which for one
// endpoint differs from the method on the wire (see GetAllMonitors).
func (c *Console) signedHeader(signMethod, uri string) http.Header {
	timestamp := formatTimestamp(c.now())
	signature := Sign(c.accessSecret, StringToSign(signMethod, uri, c.accessKey, SignatureVersion, timestamp))

	header := http.Header{}
	header.Set("access-key", c.accessKey)
	header.Set("signature-version", SignatureVersion)
	header.Set("signature", signature)
	header.Set("timestamp", timestamp)
	return header
}

func (c *Console) call(ctx context.Context, wireMethod, signMethod, uri string, form url.Values) (string, error) {
	header := c.signedHeader(signMethod, uri)
	body, err := do(ctx, c.httpClient, c.logger, wireMethod, c.baseURL+uri, header, form)
	return string(body), err
}

// AddProject creates a project. A nil opts selects the documented
// defaults: broadcast monitoring type, one "ACRCloud Music" bucket,
// line-in audio, Singapore region. The response body contains the new
// project's access key and secret.
func (c *Console) AddProject(ctx context.Context, name string, opts *ProjectOptions) (string, error) {
	resolved := opts.withDefaults()
	buckets, err := json.Marshal(resolved.Buckets)
	if err != nil {
		return "", fmt.Errorf("acrcloud: encoding buckets: %w", err)
	}

	form := url.Values{}
	form.Set("name", name)
	form.Set("region", resolved.Region)
	form.Set("type", resolved.Type)
	form.Set("buckets", string(buckets))
	form.Set("audio_type", strconv.Itoa(resolved.AudioType))
	form.Set("external_id", resolved.ExternalID)

	return c.call(ctx, http.MethodPost, http.MethodPost, "/v1/projects", form)
}

// UpdateProject replaces a project's bucket list. A nil buckets slice
// sends the default "ACRCloud Music" bucket. The console accepts the
// update as a POST, not a PUT.
func (c *Console) UpdateProject(ctx context.Context, name string, buckets []Bucket) (string, error) {
	if buckets == nil {
		buckets = defaultBuckets()
	}
	encoded, err := json.Marshal(buckets)
	if err != nil {
		return "", fmt.Errorf("acrcloud: encoding buckets: %w", err)
	}

	form := url.Values{}
	form.Set("buckets", string(encoded))

	uri := "/v1/projects/" + url.PathEscape(name)
	return c.call(ctx, http.MethodPost, http.MethodPost, uri, form)
}

// DeleteProject deletes a project by name.
func (c *Console) DeleteProject(ctx context.Context, name string) (string, error) {
	form := url.Values{}
	form.Set("name", name)

	uri := "/v1/projects/" + url.PathEscape(name)
	return c.call(ctx, http.MethodDelete, http.MethodDelete, uri, form)
}

// GetProject fetches one project's details.
func (c *Console) GetProject(ctx context.Context, name string) (string, error) {
	uri := "/v1/projects/" + url.PathEscape(name)
	return c.call(ctx, http.MethodGet, http.MethodGet, uri, nil)
}

// ListProjects fetches the account's projects.
func (c *Console) ListProjects(ctx context.Context) (string, error) {
	return c.call(ctx, http.MethodGet, http.MethodGet, "/v1/projects", nil)
}

// AddMonitor attaches a stream to a project for monitoring. streamURL is
// the live stream address with an appropriate media suffix. A nil opts
// selects the documented defaults (realtime on, record off, Singapore).
func (c *Console) AddMonitor(ctx context.Context, projectName, streamName, streamURL string, opts *MonitorOptions) (string, error) {
	resolved := opts.withDefaults()

	form := url.Values{}
	form.Set("project_name", projectName)
	form.Set("stream_name", streamName)
	form.Set("url", streamURL)
	form.Set("region", resolved.Region)
	form.Set("realtime", strconv.Itoa(resolved.Realtime))
	form.Set("record", strconv.Itoa(resolved.Record))

	return c.call(ctx, http.MethodPost, http.MethodPost, "/v1/monitor-streams", form)
}

// UpdateMonitor rewrites a stream monitor's name, URL and options.
func (c *Console) UpdateMonitor(ctx context.Context, streamID, streamName, streamURL string, opts *MonitorOptions) (string, error) {
	resolved := opts.withDefaults()

	form := url.Values{}
	form.Set("stream_name", streamName)
	form.Set("url", streamURL)
	form.Set("region", resolved.Region)
	form.Set("realtime", strconv.Itoa(resolved.Realtime))
	form.Set("record", strconv.Itoa(resolved.Record))

	uri := "/v1/monitor-streams/" + url.PathEscape(streamID)
	return c.call(ctx, http.MethodPut, http.MethodPut, uri, form)
}

// GetAllMonitors lists every monitor on a project. The endpoint is
// unusual: it expects a PUT carrying project_name as a form body, but
// validates the signature against method GET. Both sides are preserved
// exactly; the server rejects anything else.
func (c *Console) GetAllMonitors(ctx context.Context, projectName string) (string, error) {
	form := url.Values{}
	form.Set("project_name", projectName)

	return c.call(ctx, http.MethodPut, http.MethodGet, "/v1/monitor-streams", form)
}

// GetMonitor fetches one stream monitor's details.
func (c *Console) GetMonitor(ctx context.Context, streamID string) (string, error) {
	uri := "/v1/monitor-streams/" + url.PathEscape(streamID)
	return c.call(ctx, http.MethodGet, http.MethodGet, uri, nil)
}

// DeleteMonitor deletes a stream monitor.
func (c *Console) DeleteMonitor(ctx context.Context, streamID string) (string, error) {
	uri := "/v1/monitor-streams/" + url.PathEscape(streamID)
	return c.call(ctx, http.MethodDelete, http.MethodDelete, uri, nil)
}

// ActionMonitor pauses or restarts a monitor. action is ActionPause or
// ActionRestart; the server rejects anything else.
func (c *Console) ActionMonitor(ctx context.Context, streamID, action string) (string, error) {
	uri := "/v1/monitor-streams/" + url.PathEscape(streamID) + "/" + url.PathEscape(action)
	return c.call(ctx, http.MethodPut, http.MethodPut, uri, nil)
}

// PauseMonitor is a convenience for ActionMonitor with ActionPause.
func (c *Console) PauseMonitor(ctx context.Context, streamID string) (string, error) {
	return c.ActionMonitor(ctx, streamID, ActionPause)
}

// RestartMonitor is a convenience for ActionMonitor with ActionRestart.
func (c *Console) RestartMonitor(ctx context.Context, streamID string) (string, error) {
	return c.ActionMonitor(ctx, streamID, ActionRestart)
}
