package server

import (
	"net/http"
	"strings"
	"testing"

	"jobboard/internal/httpapi/httpapitest"
	"jobboard/internal/usertoken"
	"jobboard/services/profile/internal/app"
	"jobboard/services/profile/internal/store"
)

var testToken = usertoken.Config{Secret: "profile-server-test-secret"}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	a, err := app.New(app.Config{Store: store.NewMemoryStore()})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return New(Config{App: a, Verifier: httpapitest.Verifier(t, testToken)}).Router()
}

func expectMessage(t *testing.T, h http.Handler, method, path, token string, body any, want string) {
	t.Helper()
	rec := httpapitest.Do(t, h, method, path, token, body)
	httpapitest.Expect(t, rec, http.StatusOK, "")
	if got := httpapitest.Object(t, rec)["message"]; got != want {
		t.Fatalf("%s %s message = %v, want %q", method, path, got, want)
	}
}

func TestProfileUpdates(t *testing.T) {
	h := newTestServer(t)
	token := httpapitest.Token(t, testToken, "user-1", usertoken.RoleCandidate)

	httpapitest.Expect(t, httpapitest.Do(t, h, http.MethodGet, "/api/profile", token, nil), http.StatusNotFound, "Profile not found")

	expectMessage(t, h, http.MethodPut, "/api/profile/passport", token,
		map[string]string{"series": "4500", "number": "123456", "issued_by": "Dept", "issued_date": "2019-05-01"},
		"Passport data updated successfully")
	expectMessage(t, h, http.MethodPut, "/api/profile/email", token,
		map[string]string{"new_email": "new@example.com"}, "Email updated successfully")
	expectMessage(t, h, http.MethodPut, "/api/profile/phone", token,
		map[string]string{"phone_number": "+15550100"}, "Phone number updated successfully")

	rec := httpapitest.Do(t, h, http.MethodGet, "/api/profile", token, nil)
	httpapitest.Expect(t, rec, http.StatusOK, "")
	p := httpapitest.Object(t, rec)
	passport, _ := p["passport"].(map[string]any)
	if p["email"] != "new@example.com" || p["phone_number"] != "+15550100" || passport["series"] != "4500" {
		t.Fatalf("unexpected profile: %v", p)
	}

	rec = httpapitest.Do(t, h, http.MethodPut, "/api/profile/email", token, map[string]string{"new_email": "not-an-email"})
	httpapitest.Expect(t, rec, http.StatusUnprocessableEntity, "")

	rec = httpapitest.Do(t, h, http.MethodPut, "/api/profile/phone", "", map[string]string{"phone_number": "1"})
	httpapitest.Expect(t, rec, http.StatusUnauthorized, "Not authenticated")
}

func TestResumeCreatePatchDelete(t *testing.T) {
	h := newTestServer(t)
	owner := httpapitest.Token(t, testToken, "user-1", usertoken.RoleCandidate)
	other := httpapitest.Token(t, testToken, "user-2", usertoken.RoleCandidate)

	rec := httpapitest.Do(t, h, http.MethodPost, "/api/profile/resumes", owner, map[string]any{
		"title":       "Go dev",
		"position":    "Backend",
		"skills":      []string{"go", "postgres"},
		"experience":  []map[string]any{{"company": "Acme", "position": "Dev", "start_date": "2021-01", "end_date": nil, "description": "apis"}},
		"education":   []map[string]any{{"institution": "Uni", "degree": "MSc", "year": 2020}},
		"description": "hello",
	})
	httpapitest.Expect(t, rec, http.StatusOK, "")
	created := httpapitest.Object(t, rec)
	id, _ := created["id"].(string)
	if !strings.HasPrefix(id, "r-") || created["message"] != "Resume created successfully" {
		t.Fatalf("unexpected create body: %v", created)
	}

	expectMessage(t, h, http.MethodPatch, "/api/profile/resumes/"+id, owner,
		map[string]any{"skills": []string{"go"}}, "Resume updated successfully")

	rec = httpapitest.Do(t, h, http.MethodGet, "/api/profile/resumes/"+strings.TrimPrefix(id, "r-"), owner, nil)
	httpapitest.Expect(t, rec, http.StatusOK, "")
	resume := httpapitest.Object(t, rec)
	skills, _ := resume["skills"].([]any)
	experience, _ := resume["experience"].([]any)
	if resume["title"] != "Go dev" || len(skills) != 1 || len(experience) != 1 || resume["description"] != "hello" {
		t.Fatalf("partial patch changed other fields: %v", resume)
	}

	rec = httpapitest.Do(t, h, http.MethodPatch, "/api/profile/resumes/"+id, other, map[string]any{"title": "x"})
	httpapitest.Expect(t, rec, http.StatusNotFound, "Resume not found")

	expectMessage(t, h, http.MethodDelete, "/api/profile/resumes/"+id, owner, nil, "Resume deleted successfully")
	httpapitest.Expect(t, httpapitest.Do(t, h, http.MethodDelete, "/api/profile/resumes/"+id, owner, nil), http.StatusNotFound, "Resume not found")
}

func TestCreateResumeValidation(t *testing.T) {
	h := newTestServer(t)
	owner := httpapitest.Token(t, testToken, "user-1", usertoken.RoleCandidate)
	rec := httpapitest.Do(t, h, http.MethodPost, "/api/profile/resumes", owner, map[string]any{"title": "only title"})
	httpapitest.Expect(t, rec, http.StatusUnprocessableEntity, "")
}
