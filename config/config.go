package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Console ConsoleConfig `mapstructure:"console"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Client  ClientConfig  `mapstructure:"client"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// ConsoleConfig contains the account credentials for console operations
type ConsoleConfig struct {
	AccessKey    string `mapstructure:"access_key"`
	AccessSecret string `mapstructure:"access_secret"`
}

// MonitorConfig identifies the stream whose results are fetched
type MonitorConfig struct {
	AccessKey string `mapstructure:"access_key"` // project access key
	StreamID  string `mapstructure:"stream_id"`
}

// ClientConfig contains transport settings shared by all clients
type ClientConfig struct {
	Host        string `mapstructure:"host"`
	ResultHost  string `mapstructure:"result_host"`
	HTTPTimeout int    `mapstructure:"http_timeout"` // in seconds
}

// WatchConfig contains settings for the watch view
type WatchConfig struct {
	Interval int `mapstructure:"interval"` // poll interval in seconds
	History  int `mapstructure:"history"`  // rows kept in the table
}

// GetHTTPTimeout returns the HTTP timeout as a time.Duration
func (c *ClientConfig) GetHTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// GetInterval returns the watch poll interval as a time.Duration
func (w *WatchConfig) GetInterval() time.Duration {
	return time.Duration(w.Interval) * time.Second
}

// RequireConsole checks that account credentials are configured
func (c *Config) RequireConsole() error {
	if c.Console.AccessKey == "" || c.Console.AccessSecret == "" {
		return fmt.Errorf("missing required config: console.access_key and console.access_secret")
	}
	return nil
}

// RequireMonitor checks that a stream is configured for result fetching
func (c *Config) RequireMonitor() error {
	if c.Monitor.AccessKey == "" {
		return fmt.Errorf("missing required config: monitor.access_key")
	}
	if c.Monitor.StreamID == "" {
		return fmt.Errorf("missing required config: monitor.stream_id")
	}
	return nil
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Client: ClientConfig{
			HTTPTimeout: 30,
		},
		Watch: WatchConfig{
			Interval: 30,
			History:  50,
		},
	}
}
