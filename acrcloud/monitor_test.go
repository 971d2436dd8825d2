package acrcloud

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/klauspost/compress/zip"
)

const (
	testProjectKey = "project-access-key"
	testStreamID   = "11396"
)

func newTestMonitor(t *testing.T, handler http.HandlerFunc) *StreamMonitor {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	monitor, err := NewStreamMonitor(StreamMonitorConfig{
		ProjectAccessKey: testProjectKey,
		StreamID:         testStreamID,
		Host:             server.URL,
		ResultHost:       server.URL,
	})
	if err != nil {
		t.Fatalf("NewStreamMonitor: %v", err)
	}
	return monitor
}

func TestResultsQueryParams(t *testing.T) {
	cases := []struct {
		name  string
		call  func(ctx context.Context, m *StreamMonitor) (string, error)
		extra url.Values
	}{
		{
			name: "last",
			call: func(ctx context.Context, m *StreamMonitor) (string, error) {
				return m.LastResults(ctx)
			},
			extra: url.Values{},
		},
		{
			name: "current",
			call: func(ctx context.Context, m *StreamMonitor) (string, error) {
				return m.CurrentResults(ctx)
			},
			extra: url.Values{"type": {"current"}},
		},
		{
			name: "multiple last",
			call: func(ctx context.Context, m *StreamMonitor) (string, error) {
				return m.MultipleLastResults(ctx, 25)
			},
			extra: url.Values{"limit": {"25"}},
		},
		{
			name: "day",
			call: func(ctx context.Context, m *StreamMonitor) (string, error) {
				return m.DayResults(ctx, "20260815")
			},
			extra: url.Values{"date": {"20260815"}},
		},
		{
			name: "period",
			call: func(ctx context.Context, m *StreamMonitor) (string, error) {
				return m.PeriodResults(ctx, "20260815000000", "20260815120000")
			},
			extra: url.Values{"begin_time": {"20260815000000"}, "end_time": {"20260815120000"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotPath string
			var gotQuery url.Values
			monitor := newTestMonitor(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.EscapedPath()
				gotQuery = r.URL.Query()
				w.Write([]byte(`{"status":{"code":0}}`))
			})

			body, err := tc.call(context.Background(), monitor)
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if body != `{"status":{"code":0}}` {
				t.Errorf("body: got %q, want raw passthrough", body)
			}
			if gotPath != "/v1/monitor-streams/11396/results" {
				t.Errorf("path: got %q, want results path", gotPath)
			}

			want := url.Values{"access_key": {testProjectKey}}
			for key, values := range tc.extra {
				want[key] = values
			}
			if len(gotQuery) != len(want) {
				t.Errorf("query: got %v, want %v", gotQuery, want)
			}
			for key, values := range want {
				if got := gotQuery.Get(key); got != values[0] {
					t.Errorf("query %s: got %q, want %q", key, got, values[0])
				}
			}
		})
	}
}

func TestPeriodResultsEmptyEnd(t *testing.T) {
	var gotRawQuery string
	monitor := newTestMonitor(t, func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	})

	if _, err := monitor.PeriodResults(context.Background(), "20260815000000", ""); err != nil {
		t.Fatalf("PeriodResults: %v", err)
	}

	// An omitted end still travels as an empty end_time, which the server
	// defaults to "now".
	query, err := url.ParseQuery(gotRawQuery)
	if err != nil {
		t.Fatalf("parsing query: %v", err)
	}
	values, present := query["end_time"]
	if !present || len(values) != 1 || values[0] != "" {
		t.Errorf("end_time: got %v, want a single empty value", values)
	}
}

func TestMonthResultsReturnsZip(t *testing.T) {
	// Serve a real archive so the smoke check exercises actual zip bytes.
	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)
	entry, err := writer.Create("20260801.json")
	if err != nil {
		t.Fatalf("creating entry: %v", err)
	}
	entry.Write([]byte(`[]`))
	writer.Close()

	var gotPath string
	monitor := newTestMonitor(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write(buffer.Bytes())
	})

	data, err := monitor.MonthResults(context.Background(), "202608")
	if err != nil {
		t.Fatalf("MonthResults: %v", err)
	}
	if gotPath != "/project-access-key/11396/202608.zip" {
		t.Errorf("path: got %q, want /{key}/{id}/{month}.zip", gotPath)
	}
	if !bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		t.Errorf("body does not start with a zip local-file-header signature: % x", data)
	}
}

func TestMonitorServerError(t *testing.T) {
	monitor := newTestMonitor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"invalid access key"}`))
	})

	body, err := monitor.LastResults(context.Background())
	if body != `{"error":"invalid access key"}` {
		t.Errorf("body not passed through: got %q", body)
	}
	var serverErr *ServerError
	if !errors.As(err, &serverErr) || serverErr.StatusCode != http.StatusForbidden {
		t.Errorf("error: got %v, want *ServerError with status 403", err)
	}
}

func TestNewStreamMonitorValidation(t *testing.T) {
	t.Parallel()
	if _, err := NewStreamMonitor(StreamMonitorConfig{StreamID: "1"}); err == nil {
		t.Errorf("expected error for missing project access key")
	}
	if _, err := NewStreamMonitor(StreamMonitorConfig{ProjectAccessKey: "k"}); err == nil {
		t.Errorf("expected error for missing stream id")
	}
}
