package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobboard/internal/apperr"
)

var testSchema = MustSchema(`{
	"type": "object",
	"required": ["title", "rating"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"rating": {"type": "integer"}
	}
}`)

type testBody struct {
	Title  string `json:"title"`
	Rating int    `json:"rating"`
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["detail"]
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind apperr.Kind
		wantErr  bool
	}{
		{name: "valid", body: `{"title":"Go dev","rating":4}`},
		{name: "malformed", body: `{"title":`, wantErr: true, wantKind: apperr.Unprocessable},
		{name: "empty", body: ``, wantErr: true, wantKind: apperr.Unprocessable},
		{name: "missing field", body: `{"title":"x"}`, wantErr: true, wantKind: apperr.Unprocessable},
		{name: "wrong type", body: `{"title":"x","rating":"five"}`, wantErr: true, wantKind: apperr.Unprocessable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst testBody
			err := Decode(req, testSchema, &dst)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("decode: %v", err)
				}
				if dst.Title != "Go dev" || dst.Rating != 4 {
					t.Fatalf("unexpected decoded body: %+v", dst)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := apperr.KindOf(err); got != tc.wantKind {
				t.Fatalf("kind = %s, want %s", got, tc.wantKind)
			}
		})
	}
}

func TestSchemaErrorNamesField(t *testing.T) {
	err := testSchema.Validate([]byte(`{"title":""}`))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "rating") {
		t.Fatalf("expected missing field in message, got %q", err.Error())
	}
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	WriteError(rec, req, apperr.NewConflict("Application already processed"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "Application already processed" {
		t.Fatalf("detail = %q", got)
	}

	rec = httptest.NewRecorder()
	WriteError(rec, req, errors.New("pq: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "internal error" {
		t.Fatalf("internal detail leaked: %q", got)
	}
}

func TestRouterHealthAndFallbacks(t *testing.T) {
	h := Wrap("test", NewRouter())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected health body: %v", body)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound || decodeDetail(t, rec) != "Not Found" {
		t.Fatalf("unexpected 404 response: %d", rec.Code)
	}
}
