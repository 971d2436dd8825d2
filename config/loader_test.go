package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "acrmon.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[console]
access_key = "ak"
access_secret = "as"

[monitor]
access_key = "pk"
stream_id = "11396"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Console.AccessKey != "ak" || cfg.Console.AccessSecret != "as" {
		t.Errorf("console credentials: got %+v", cfg.Console)
	}
	if cfg.Monitor.StreamID != "11396" {
		t.Errorf("stream id: got %q", cfg.Monitor.StreamID)
	}
	if cfg.Client.GetHTTPTimeout() != 30*time.Second {
		t.Errorf("http timeout default: got %v, want 30s", cfg.Client.GetHTTPTimeout())
	}
	if cfg.Watch.GetInterval() != 30*time.Second {
		t.Errorf("watch interval default: got %v, want 30s", cfg.Watch.GetInterval())
	}
	if cfg.Watch.History != 50 {
		t.Errorf("watch history default: got %d, want 50", cfg.Watch.History)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[client]
host = "api.eu-west-1.acrcloud.com"
http_timeout = 5

[watch]
interval = 10
history = 200
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Client.Host != "api.eu-west-1.acrcloud.com" {
		t.Errorf("host: got %q", cfg.Client.Host)
	}
	if cfg.Client.GetHTTPTimeout() != 5*time.Second {
		t.Errorf("http timeout: got %v, want 5s", cfg.Client.GetHTTPTimeout())
	}
	if cfg.Watch.Interval != 10 || cfg.Watch.History != 200 {
		t.Errorf("watch settings: got %+v", cfg.Watch)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Errorf("expected an error for a missing config file")
	}
}

func TestRequireConsole(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	if err := cfg.RequireConsole(); err == nil {
		t.Errorf("expected an error without console credentials")
	}
	cfg.Console = ConsoleConfig{AccessKey: "ak", AccessSecret: "as"}
	if err := cfg.RequireConsole(); err != nil {
		t.Errorf("RequireConsole: %v", err)
	}
}

func TestRequireMonitor(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	if err := cfg.RequireMonitor(); err == nil {
		t.Errorf("expected an error without a configured stream")
	}
	cfg.Monitor = MonitorConfig{AccessKey: "pk", StreamID: "11396"}
	if err := cfg.RequireMonitor(); err != nil {
		t.Errorf("RequireMonitor: %v", err)
	}
}
