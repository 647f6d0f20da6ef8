package util

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	trusted, err := NewTrustedProxies([]string{"10.0.0.0/8", "192.168.1.10"})
	if err != nil {
		t.Fatalf("new trusted proxies: %v", err)
	}

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xrip       string
		trusted    *TrustedProxies
		want       string
	}{
		{name: "untrusted peer ignores headers", remoteAddr: "198.51.100.10:1234", xff: "203.0.113.5", xrip: "203.0.113.6", want: "198.51.100.10"},
		{name: "trusted peer uses forwarded for", remoteAddr: "10.0.0.20:1234", xff: "203.0.113.5", trusted: trusted, want: "203.0.113.5"},
		{name: "rightmost untrusted hop", remoteAddr: "192.168.1.10:80", xff: "203.0.113.9, 203.0.113.5, 10.0.0.10", trusted: trusted, want: "203.0.113.5"},
		{name: "real ip fallback", remoteAddr: "10.0.0.20:1234", xff: "garbage", xrip: "203.0.113.7", trusted: trusted, want: "203.0.113.7"},
		{name: "every hop trusted", remoteAddr: "10.0.0.20:1234", xff: "10.0.0.5, 10.0.0.10", trusted: trusted, want: "10.0.0.5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "http://jobs.local/api/auth/login", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.xrip != "" {
				req.Header.Set("X-Real-IP", tc.xrip)
			}
			if got := ClientIP(req, tc.trusted); got != tc.want {
				t.Fatalf("client ip = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewTrustedProxiesRejectsGarbage(t *testing.T) {
	if _, err := NewTrustedProxies([]string{"not-an-ip"}); err == nil {
		t.Fatalf("expected parse error")
	}
	got, err := NewTrustedProxies([]string{" ", ""})
	if err != nil || got != nil {
		t.Fatalf("expected nil set for blank entries, got %v err %v", got, err)
	}
}
