package app

import (
	"context"
	"errors"
	"testing"

	"jobboard/pkg/domain"
	"jobboard/services/verification/internal/identity"
	"jobboard/services/verification/internal/store"
)

type stubIdentity struct {
	submitErr error
	result    identity.Result
	checkErr  error
	checks    int
}

func (s *stubIdentity) Submit(context.Context, domain.Verification) error { return s.submitErr }

func (s *stubIdentity) Check(context.Context, domain.Verification) (identity.Result, error) {
	s.checks++
	return s.result, s.checkErr
}

func newTestApp(t *testing.T, idv identity.Verifier) (*App, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	a, err := New(Config{Store: st, Identity: idv})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, st
}

func input() PassportInput {
	return PassportInput{
		FirstName:   "Ann",
		LastName:    "Lee",
		Passport:    domain.Passport{Series: "4500", Number: "123456", IssuedBy: "Dept", IssuedDate: "2020-02-02"},
		Citizenship: "NZ",
	}
}

func TestOneActiveVerificationPerUser(t *testing.T) {
	a, _ := newTestApp(t, nil)
	ctx := context.Background()

	v, err := a.Submit(ctx, "u1", input())
	if err != nil || v.Status != domain.VerificationPending || v.ID[:6] != "verif-" {
		t.Fatalf("submit = %+v, %v", v, err)
	}
	if _, err := a.Submit(ctx, "u1", input()); !errors.Is(err, ErrActiveVerification) {
		t.Fatalf("second pending err = %v", err)
	}
	if _, err := a.Status(ctx, "u1", v.ID); err != nil {
		t.Fatalf("status: %v", err)
	}
	if _, err := a.Submit(ctx, "u1", input()); !errors.Is(err, ErrActiveVerification) {
		t.Fatalf("after verified err = %v", err)
	}
	if _, err := a.Submit(ctx, "u2", input()); err != nil {
		t.Fatalf("other user: %v", err)
	}
}

func TestSubmitFailureRemovesRecord(t *testing.T) {
	idv := &stubIdentity{submitErr: errors.New("registry down")}
	a, _ := newTestApp(t, idv)
	ctx := context.Background()

	if _, err := a.Submit(ctx, "u1", input()); !errors.Is(err, ErrSubmitFailed) {
		t.Fatalf("submit err = %v", err)
	}
	idv.submitErr = nil
	if _, err := a.Submit(ctx, "u1", input()); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestStatusResolvesOnce(t *testing.T) {
	idv := &stubIdentity{result: identity.Result{Status: domain.VerificationVerified, PassportValid: true, MatchesRegistry: true}}
	a, _ := newTestApp(t, idv)
	ctx := context.Background()
	v, _ := a.Submit(ctx, "u1", input())

	if _, err := a.Status(ctx, "u2", v.ID); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("stranger err = %v", err)
	}
	if _, err := a.Status(ctx, "u1", "verif-missing"); !errors.Is(err, ErrVerificationNotFound) {
		t.Fatalf("missing err = %v", err)
	}
	got, err := a.Status(ctx, "u1", v.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if got.Status != domain.VerificationVerified || got.VerifiedAt == nil || !got.PassportValid {
		t.Fatalf("unexpected verification: %+v", got)
	}
	if _, err := a.Status(ctx, "u1", v.ID); err != nil {
		t.Fatalf("second status: %v", err)
	}
	if idv.checks != 1 {
		t.Fatalf("registry polled %d times, want 1", idv.checks)
	}
}

func TestStatusStaysPending(t *testing.T) {
	idv := &stubIdentity{result: identity.Result{Status: domain.VerificationPending}}
	a, _ := newTestApp(t, idv)
	ctx := context.Background()
	v, _ := a.Submit(ctx, "u1", input())

	got, err := a.Status(ctx, "u1", v.ID)
	if err != nil || got.Status != domain.VerificationPending {
		t.Fatalf("pending status = %+v, %v", got, err)
	}
	idv.checkErr = errors.New("timeout")
	got, err = a.Status(ctx, "u1", v.ID)
	if err != nil || got.Status != domain.VerificationPending {
		t.Fatalf("status on registry error = %+v, %v", got, err)
	}
}

func TestRejectedVerificationAllowsResubmit(t *testing.T) {
	idv := &stubIdentity{result: identity.Result{Status: domain.VerificationRejected}}
	a, _ := newTestApp(t, idv)
	ctx := context.Background()
	v, _ := a.Submit(ctx, "u1", input())

	got, err := a.Status(ctx, "u1", v.ID)
	if err != nil || got.Status != domain.VerificationRejected || got.VerifiedAt != nil {
		t.Fatalf("rejected status = %+v, %v", got, err)
	}
	if _, err := a.Submit(ctx, "u1", input()); err != nil {
		t.Fatalf("resubmit after rejection: %v", err)
	}
}
