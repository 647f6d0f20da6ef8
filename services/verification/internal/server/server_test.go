package server

import (
	"context"
	"net/http"
	"testing"

	"jobboard/internal/httpapi/httpapitest"
	"jobboard/internal/usertoken"
	"jobboard/pkg/domain"
	"jobboard/services/verification/internal/app"
	"jobboard/services/verification/internal/identity"
	"jobboard/services/verification/internal/store"
)

var testToken = usertoken.Config{Secret: "verification-server-test-secret"}

type fixedIdentity struct {
	result identity.Result
}

func (fixedIdentity) Submit(context.Context, domain.Verification) error { return nil }

func (f fixedIdentity) Check(context.Context, domain.Verification) (identity.Result, error) {
	return f.result, nil
}

func newTestServer(t *testing.T, idv identity.Verifier) http.Handler {
	t.Helper()
	a, err := app.New(app.Config{Store: store.NewMemoryStore(), Identity: idv})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return New(Config{App: a, Verifier: httpapitest.Verifier(t, testToken)}).Router()
}

func passportBody() map[string]any {
	return map[string]any{
		"first_name":  "Ann",
		"last_name":   "Lee",
		"series":      "4500",
		"number":      "123456",
		"issued_by":   "Dept",
		"issued_date": "2020-02-02",
		"citizenship": "NZ",
	}
}

func TestSubmitAndPollVerified(t *testing.T) {
	h := newTestServer(t, nil)
	token := httpapitest.Token(t, testToken, "1", usertoken.RoleCandidate)

	rec := httpapitest.Do(t, h, http.MethodPost, "/api/verification/passport", token, passportBody())
	httpapitest.Expect(t, rec, http.StatusOK, "")
	got := httpapitest.Object(t, rec)
	id, _ := got["verification_id"].(string)
	if id == "" || got["status"] != "pending" || got["message"] != "Verification request submitted successfully" {
		t.Fatalf("unexpected submit body: %v", got)
	}

	rec = httpapitest.Do(t, h, http.MethodPost, "/api/verification/passport", token, passportBody())
	httpapitest.Expect(t, rec, http.StatusConflict, "Active verification already exists for this user")

	rec = httpapitest.Do(t, h, http.MethodGet, "/api/verification/passport/"+id, token, nil)
	httpapitest.Expect(t, rec, http.StatusOK, "")
	got = httpapitest.Object(t, rec)
	details, ok := got["details"].(map[string]any)
	if got["status"] != "verified" || got["verified_at"] == nil || !ok {
		t.Fatalf("unexpected status body: %v", got)
	}
	if details["first_name"] != "Ann" || details["passport_valid"] != true || details["matches_registry"] != true {
		t.Fatalf("unexpected details: %v", details)
	}

	other := httpapitest.Token(t, testToken, "2", usertoken.RoleCandidate)
	rec = httpapitest.Do(t, h, http.MethodGet, "/api/verification/passport/"+id, other, nil)
	httpapitest.Expect(t, rec, http.StatusForbidden, "Access denied to this verification")

	rec = httpapitest.Do(t, h, http.MethodGet, "/api/verification/passport/verif-missing", token, nil)
	httpapitest.Expect(t, rec, http.StatusNotFound, "Verification not found")
}

func TestPollReportsReason(t *testing.T) {
	pending := newTestServer(t, fixedIdentity{result: identity.Result{Status: domain.VerificationPending}})
	token := httpapitest.Token(t, testToken, "1", usertoken.RoleEmployer)
	rec := httpapitest.Do(t, pending, http.MethodPost, "/api/verification/passport", token, passportBody())
	id, _ := httpapitest.Object(t, rec)["verification_id"].(string)
	rec = httpapitest.Do(t, pending, http.MethodGet, "/api/verification/passport/"+id, token, nil)
	httpapitest.Expect(t, rec, http.StatusOK, "")
	if got := httpapitest.Object(t, rec); got["status"] != "pending" || got["reason"] != "Verification is in progress" {
		t.Fatalf("unexpected pending body: %v", got)
	}

	rejected := newTestServer(t, fixedIdentity{result: identity.Result{Status: domain.VerificationRejected}})
	rec = httpapitest.Do(t, rejected, http.MethodPost, "/api/verification/passport", token, passportBody())
	id, _ = httpapitest.Object(t, rec)["verification_id"].(string)
	rec = httpapitest.Do(t, rejected, http.MethodGet, "/api/verification/passport/"+id, token, nil)
	httpapitest.Expect(t, rec, http.StatusOK, "")
	if got := httpapitest.Object(t, rec); got["status"] != "rejected" || got["reason"] != "Passport verification failed" {
		t.Fatalf("unexpected rejected body: %v", got)
	}
}

func TestSubmitValidation(t *testing.T) {
	h := newTestServer(t, nil)
	token := httpapitest.Token(t, testToken, "1", usertoken.RoleCandidate)

	rec := httpapitest.Do(t, h, http.MethodPost, "/api/verification/passport", "", passportBody())
	httpapitest.Expect(t, rec, http.StatusUnauthorized, "Not authenticated")

	body := passportBody()
	delete(body, "series")
	rec = httpapitest.Do(t, h, http.MethodPost, "/api/verification/passport", token, body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing series status = %d", rec.Code)
	}
}
