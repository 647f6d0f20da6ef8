package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"jobboard/internal/ratelimit"
	"jobboard/internal/usertoken"
	"jobboard/services/auth/internal/app"
	"jobboard/services/auth/internal/store"
)

var testToken = usertoken.Config{Secret: "auth-server-test-secret"}

func newTestServer(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	a, err := app.New(app.Config{Store: store.NewMemoryStore(), Token: testToken})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	cfg.App = a
	return New(cfg).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
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
	req.RemoteAddr = "203.0.113.10:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestRegisterThenLoginIssuesTokenForRegisteredUser(t *testing.T) {
	h := newTestServer(t, Config{})

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "cand@example.com", "password": "pw-1", "full_name": "Cand Idate", "role": "candidate",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	user := decode(t, rec)
	id, _ := user["id"].(string)
	if id == "" || user["email"] != "cand@example.com" || user["full_name"] != "Cand Idate" || user["role"] != "candidate" {
		t.Fatalf("unexpected register body: %v", user)
	}
	createdAt, _ := user["created_at"].(string)
	if _, err := time.Parse(time.RFC3339Nano, createdAt); err != nil || createdAt[len(createdAt)-1] != 'Z' {
		t.Fatalf("created_at %q is not UTC RFC3339", createdAt)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", map[string]string{"email": "cand@example.com", "password": "pw-1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	login := decode(t, rec)
	if login["expires_in"] != float64(3600) {
		t.Fatalf("expires_in = %v", login["expires_in"])
	}
	verifier, _ := usertoken.NewHMACVerifier(testToken)
	claims, err := verifier.Verify(login["access_token"].(string))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != id || claims.Role != "candidate" {
		t.Fatalf("token subject %q role %q, want %q candidate", claims.Subject, claims.Role, id)
	}
}

func TestRegisterErrors(t *testing.T) {
	h := newTestServer(t, Config{})
	valid := map[string]string{"email": "e@example.com", "password": "pw", "full_name": "E", "role": "employer"}
	if rec := doJSON(t, h, http.MethodPost, "/api/auth/register", valid); rec.Code != http.StatusOK {
		t.Fatalf("seed register status = %d", rec.Code)
	}

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantDetail string
	}{
		{name: "duplicate email", body: valid, wantStatus: http.StatusBadRequest, wantDetail: "User already exists"},
		{name: "invalid role", body: map[string]string{"email": "r@example.com", "password": "pw", "full_name": "R", "role": "admin"}, wantStatus: http.StatusBadRequest, wantDetail: "Invalid role"},
		{name: "missing field", body: map[string]string{"email": "m@example.com", "password": "pw"}, wantStatus: http.StatusUnprocessableEntity},
		{name: "bad email", body: map[string]string{"email": "nope", "password": "pw", "full_name": "N", "role": "candidate"}, wantStatus: http.StatusUnprocessableEntity},
		{name: "malformed json", body: `{"email":`, wantStatus: http.StatusUnprocessableEntity, wantDetail: "invalid JSON body"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/auth/register", tc.body)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantDetail != "" {
				if got := decode(t, rec)["detail"]; got != tc.wantDetail {
					t.Fatalf("detail = %v, want %q", got, tc.wantDetail)
				}
			}
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newTestServer(t, Config{})
	doJSON(t, h, http.MethodPost, "/api/auth/register", map[string]string{"email": "l@example.com", "password": "pw", "full_name": "L", "role": "candidate"})

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", map[string]string{"email": "l@example.com", "password": "bad"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := decode(t, rec)["detail"]; got != "Invalid email or password" {
		t.Fatalf("detail = %v", got)
	}
}

func TestLoginRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	limiter, err := ratelimit.NewFixedWindowLimiter(client, "test", 2, time.Minute)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	h := newTestServer(t, Config{LoginLimiter: limiter})
	body := map[string]string{"email": "x@example.com", "password": "pw"}
	for i := 0; i < 2; i++ {
		if rec := doJSON(t, h, http.MethodPost, "/api/auth/login", body); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, rec.Code)
		}
	}
	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third attempt status = %d, want 429", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, Config{})
	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || decode(t, rec)["status"] != "ok" {
		t.Fatalf("unexpected health response %d", rec.Code)
	}
}
