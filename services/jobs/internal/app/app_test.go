package app

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"jobboard/internal/apperr"
	"jobboard/pkg/domain"
	"jobboard/services/jobs/internal/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{Store: store.NewMemoryStore()})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func sampleInput() JobInput {
	return JobInput{
		Title:          "Go developer",
		Description:    "Build services",
		Requirements:   []string{"go", "sql"},
		Salary:         5000,
		Currency:       "USD",
		Location:       "Berlin",
		EmploymentType: "full-time",
	}
}

func TestCreateJobDefaults(t *testing.T) {
	a := newTestApp(t)
	job, err := a.CreateJob(context.Background(), "emp-1", sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(job.ID) < 5 || job.ID[:4] != "job-" {
		t.Fatalf("id %q lacks job- prefix", job.ID)
	}
	if job.CompanyName != domain.DefaultCompanyName {
		t.Fatalf("company = %q", job.CompanyName)
	}
	if job.SalaryFrom != 5000 || job.SalaryTo != 5000 {
		t.Fatalf("salary range = %v..%v", job.SalaryFrom, job.SalaryTo)
	}
	if job.EmployerID != "emp-1" || job.PostedAt.IsZero() {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestMutationsRequireOwnership(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	job, err := a.CreateJob(ctx, "emp-1", sampleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := a.ReplaceJob(ctx, "emp-2", job.ID, sampleInput()); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("replace by stranger err = %v", err)
	}
	title := "Hijacked"
	if _, err := a.PatchJob(ctx, "emp-2", job.ID, JobPatch{Title: &title}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("patch by stranger err = %v", err)
	}
	if err := a.DeleteJob(ctx, "emp-2", job.ID); apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("delete by stranger err = %v", err)
	}
	got, err := a.GetJob(ctx, job.ID)
	if err != nil || got.Title != "Go developer" {
		t.Fatalf("job changed by stranger: %+v, %v", got, err)
	}
}

func TestPatchOnlyTouchesPresentFields(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	job, _ := a.CreateJob(ctx, "emp-1", sampleInput())

	salary := 7000.0
	patched, err := a.PatchJob(ctx, "emp-1", job.ID, JobPatch{Salary: &salary})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patched.Salary != 7000 || patched.SalaryFrom != 7000 || patched.SalaryTo != 7000 {
		t.Fatalf("salary not propagated: %+v", patched)
	}
	if patched.Title != job.Title || patched.Location != job.Location {
		t.Fatalf("untouched fields changed: %+v", patched)
	}
	if !patched.PostedAt.Equal(job.PostedAt) {
		t.Fatalf("posted_at changed")
	}
}

func TestReplaceAndDelete(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	job, _ := a.CreateJob(ctx, "emp-1", sampleInput())

	in := sampleInput()
	in.Title = "Senior Go developer"
	in.CompanyName = "Acme"
	replaced, err := a.ReplaceJob(ctx, "emp-1", job.ID, in)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if replaced.Title != in.Title || replaced.CompanyName != "Acme" {
		t.Fatalf("replace not applied: %+v", replaced)
	}
	if err := a.DeleteJob(ctx, "emp-1", job.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := a.GetJob(ctx, job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
	if err := a.DeleteJob(ctx, "emp-1", job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
}

func TestSearchJobs(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	a.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}

	inputs := []JobInput{
		{Title: "Go Engineer", Description: "backend", Salary: 3000, Location: "Berlin", EmploymentType: "full-time"},
		{Title: "Designer", Description: "golang-curious designer", Salary: 2000, Location: "Remote Berlin", EmploymentType: "part-time"},
		{Title: "Accountant", Description: "books", Salary: 4000, Location: "Paris", EmploymentType: "full-time"},
	}
	for _, in := range inputs {
		if _, err := a.CreateJob(ctx, "emp-1", in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	res, err := a.SearchJobs(ctx, domain.JobFilter{Query: "GO", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 2 || len(res.Jobs) != 2 {
		t.Fatalf("query total = %d, len = %d", res.Total, len(res.Jobs))
	}
	if res.Jobs[0].Title != "Designer" {
		t.Fatalf("results not newest first: %q", res.Jobs[0].Title)
	}

	floor := 2500.0
	res, _ = a.SearchJobs(ctx, domain.JobFilter{Location: "berlin", SalaryFrom: &floor, Page: 1, Limit: 10})
	if res.Total != 1 || res.Jobs[0].Title != "Go Engineer" {
		t.Fatalf("location+salary filter: %+v", res)
	}

	res, _ = a.SearchJobs(ctx, domain.JobFilter{EmploymentType: "full-time", Page: 2, Limit: 1})
	if res.Total != 2 || len(res.Jobs) != 1 || res.Jobs[0].Title != "Go Engineer" {
		t.Fatalf("pagination: total %d jobs %+v", res.Total, res.Jobs)
	}

	res, err = a.SearchJobs(ctx, domain.JobFilter{Page: math.MaxInt, Limit: 10})
	if err != nil || res.Total != 3 || len(res.Jobs) != 0 {
		t.Fatalf("page past the end: %+v, %v", res, err)
	}
}
