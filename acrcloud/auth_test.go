package acrcloud

import (
	"testing"
	"time"
)

func TestSignKnownVectors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		secret  string
		message string
		want    string
	}{
		{
			name:    "get projects",
			secret:  "abc",
			message: "GET\n/v1/projects\nK1\n1\n1000.0",
			want:    "8S69fcB2EildD0mQCKRZbKY9ank=",
		},
		{
			name:    "post projects",
			secret:  "abc",
			message: "POST\n/v1/projects\nK1\n1\n1000.0",
			want:    "F426gLtOluhnM9Er6p8Qde1TIms=",
		},
		{
			name:    "delete project",
			secret:  "topsecret",
			message: "DELETE\n/v1/projects/radio\nAK\n1\n1699999999.5",
			want:    "rzZnXKtIpsgedCDOlAfWY7NvVfc=",
		},
		{
			name:    "empty message",
			secret:  "s",
			message: "",
			want:    "cdWK0mhC79q4otVBgYkh0gZq/r0=",
		},
	}

	for _, tc := range cases {
		got := Sign([]byte(tc.secret), tc.message)
		if got != tc.want {
			t.Errorf("%s: Sign: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSignDeterministic(t *testing.T) {
	t.Parallel()
	message := StringToSign("GET", "/v1/projects", "K1", "1", "1000.0")
	first := Sign([]byte("abc"), message)
	second := Sign([]byte("abc"), message)
	if first != second {
		t.Errorf("Sign not deterministic: %q vs %q", first, second)
	}
}

func TestSignFieldSensitivity(t *testing.T) {
	t.Parallel()
	base := Sign([]byte("abc"), StringToSign("GET", "/v1/projects", "K1", "1", "1000.0"))

	variants := []struct {
		name, method, uri, accessKey, version, timestamp string
	}{
		{"method", "POST", "/v1/projects", "K1", "1", "1000.0"},
		{"uri", "GET", "/v1/projects/x", "K1", "1", "1000.0"},
		{"access key", "GET", "/v1/projects", "K2", "1", "1000.0"},
		{"version", "GET", "/v1/projects", "K1", "2", "1000.0"},
		{"timestamp", "GET", "/v1/projects", "K1", "1", "1000.1"},
	}
	for _, v := range variants {
		got := Sign([]byte("abc"), StringToSign(v.method, v.uri, v.accessKey, v.version, v.timestamp))
		if got == base {
			t.Errorf("changing %s did not change the signature", v.name)
		}
	}
}

func TestStringToSign(t *testing.T) {
	t.Parallel()
	got := StringToSign("GET", "/v1/projects", "K1", "1", "1000.0")
	want := "GET\n/v1/projects\nK1\n1\n1000.0"
	if got != want {
		t.Errorf("StringToSign: got %q, want %q", got, want)
	}
}

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Unix(1000, 0), "1000"},
		{time.Unix(1699999999, 500000000), "1699999999.5"},
		{time.Unix(0, 0), "0"},
	}
	for _, tc := range cases {
		if got := formatTimestamp(tc.in); got != tc.want {
			t.Errorf("formatTimestamp(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
