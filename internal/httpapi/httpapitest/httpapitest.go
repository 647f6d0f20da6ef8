// Package httpapitest holds request helpers shared by service handler tests.
package httpapitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard/internal/usertoken"
)

// Token issues a bearer token for subject signed with cfg.
func Token(t *testing.T, cfg usertoken.Config, subject, role string) string {
	t.Helper()
	issuer, err := usertoken.NewIssuer(cfg, 0)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	token, err := issuer.Issue(subject, subject+"@example.com", role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// Verifier builds the HMAC verifier matching Token.
func Verifier(t *testing.T, cfg usertoken.Config) usertoken.Verifier {
	t.Helper()
	v, err := usertoken.NewHMACVerifier(cfg)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return v
}

// Do sends a request through h. A string body is sent verbatim, anything
// else is JSON-encoded; an empty token sends no Authorization header.
func Do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Object decodes a JSON object response.
func Object(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// Expect fails the test unless rec has the given status and, when detail is
// non-empty, the given error detail.
func Expect(t *testing.T, rec *httptest.ResponseRecorder, status int, detail string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if detail == "" {
		return
	}
	if got := Object(t, rec)["detail"]; got != detail {
		t.Fatalf("detail = %v, want %q", got, detail)
	}
}
