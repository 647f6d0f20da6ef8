package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jobboard/pkg/domain"
	"jobboard/services/profile/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{Store: store.NewMemoryStore()})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestProfileCreatedLazilyAndMergedColumnWise(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	if _, err := a.GetProfile(ctx, "u1"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("get before write err = %v", err)
	}
	if err := a.UpdatePhone(ctx, "u1", "+100"); err != nil {
		t.Fatalf("update phone: %v", err)
	}
	if err := a.UpdateEmail(ctx, "u1", "me@example.com"); err != nil {
		t.Fatalf("update email: %v", err)
	}
	passport := domain.Passport{Series: "1234", Number: "567890", IssuedBy: "Office", IssuedDate: "2020-01-01"}
	if err := a.UpdatePassport(ctx, "u1", passport); err != nil {
		t.Fatalf("update passport: %v", err)
	}

	p, err := a.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if p.PhoneNumber != "+100" || p.Email != "me@example.com" || p.Passport != passport {
		t.Fatalf("profile lost a column: %+v", p)
	}
}

func TestResumeLifecycle(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	r, err := a.CreateResume(ctx, "u1", ResumeInput{
		Title:      "Backend",
		Position:   "Engineer",
		Skills:     []string{"go"},
		Experience: []domain.Experience{{Company: "Acme", Position: "Dev", StartDate: "2020-01", EndDate: "2022-01"}},
		Education:  []domain.Education{{Institution: "MIT", Degree: "BSc", Year: 2019}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(r.ID, "r-") {
		t.Fatalf("id %q lacks r- prefix", r.ID)
	}

	bare := strings.TrimPrefix(r.ID, "r-")
	got, err := a.GetResume(ctx, "u1", bare)
	if err != nil || got.ID != r.ID {
		t.Fatalf("get by bare id = %+v, %v", got, err)
	}
	if _, err := a.GetResume(ctx, "u2", r.ID); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("stranger get err = %v", err)
	}

	title := "Platform"
	patched, err := a.PatchResume(ctx, "u1", r.ID, domain.ResumePatch{Title: &title})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patched.Title != "Platform" || patched.Position != "Engineer" || len(patched.Skills) != 1 ||
		len(patched.Experience) != 1 || patched.Education[0].Year != 2019 {
		t.Fatalf("patch touched other fields: %+v", patched)
	}

	if err := a.DeleteResume(ctx, "u2", r.ID); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("stranger delete err = %v", err)
	}
	if err := a.DeleteResume(ctx, "u1", bare); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := a.PatchResume(ctx, "u1", r.ID, domain.ResumePatch{Title: &title}); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("patch after delete err = %v", err)
	}
}

func TestResumeID(t *testing.T) {
	for in, want := range map[string]string{"abc": "r-abc", "r-abc": "r-abc", " r-x ": "r-x", "": ""} {
		if got := ResumeID(in); got != want {
			t.Fatalf("ResumeID(%q) = %q, want %q", in, got, want)
		}
	}
}
