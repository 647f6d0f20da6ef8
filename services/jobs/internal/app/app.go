package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/util"
	"jobboard/pkg/domain"
	"jobboard/services/jobs/internal/store"
)

// Config holds dependencies for the jobs core.
type Config struct {
	DatabaseURL string
	Store       store.Store
}

// App manages job postings.
type App struct {
	store store.Store
	now   func() time.Time
}

// New builds the app, opening Postgres when no store is injected.
func New(cfg Config) (*App, error) {
	st := cfg.Store
	if st == nil {
		if cfg.DatabaseURL == "" {
			return nil, errors.New("database URL is required")
		}
		gs, err := store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init store: %w", err)
		}
		st = gs
	}
	return &App{store: st, now: time.Now}, nil
}

// JobInput is the full set of employer-editable fields.
type JobInput struct {
	Title          string
	Description    string
	Requirements   []string
	Salary         float64
	Currency       string
	Location       string
	EmploymentType string
	CompanyName    string
}

// JobPatch is a partial update; nil fields are left unchanged.
type JobPatch struct {
	Title          *string
	Description    *string
	Requirements   *[]string
	Salary         *float64
	Currency       *string
	Location       *string
	EmploymentType *string
	CompanyName    *string
}

// CreateJob posts a new job owned by employerID.
func (a *App) CreateJob(ctx context.Context, employerID string, in JobInput) (domain.Job, error) {
	now := a.now().UTC()
	job := domain.Job{
		ID:         util.PrefixedID("job"),
		EmployerID: employerID,
		PostedAt:   now,
	}
	applyInput(&job, in)
	job.UpdatedAt = now
	if err := a.store.CreateJob(ctx, job); err != nil {
		return domain.Job{}, fmt.Errorf("save job: %w", err)
	}
	util.LoggerFromContext(ctx).Info("job created", "job_id", job.ID, "employer_id", employerID)
	return job, nil
}

// ReplaceJob overwrites every editable field of an owned job.
func (a *App) ReplaceJob(ctx context.Context, employerID, id string, in JobInput) (domain.Job, error) {
	job, err := a.ownedJob(ctx, employerID, id)
	if err != nil {
		return domain.Job{}, err
	}
	applyInput(&job, in)
	return a.save(ctx, job)
}

// PatchJob overwrites only the fields present in p. A salary change moves
// salary_from and salary_to with it.
func (a *App) PatchJob(ctx context.Context, employerID, id string, p JobPatch) (domain.Job, error) {
	job, err := a.ownedJob(ctx, employerID, id)
	if err != nil {
		return domain.Job{}, err
	}
	if p.Title != nil {
		job.Title = *p.Title
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.Requirements != nil {
		job.Requirements = normalizeList(*p.Requirements)
	}
	if p.Salary != nil {
		job.Salary = *p.Salary
		job.SalaryFrom = *p.Salary
		job.SalaryTo = *p.Salary
	}
	if p.Currency != nil {
		job.Currency = *p.Currency
	}
	if p.Location != nil {
		job.Location = *p.Location
	}
	if p.EmploymentType != nil {
		job.EmploymentType = *p.EmploymentType
	}
	if p.CompanyName != nil {
		job.CompanyName = companyOrDefault(*p.CompanyName)
	}
	return a.save(ctx, job)
}

// DeleteJob removes an owned job.
func (a *App) DeleteJob(ctx context.Context, employerID, id string) error {
	deleted, err := a.store.DeleteJob(ctx, id, employerID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrJobNotFound
	}
	util.LoggerFromContext(ctx).Info("job deleted", "job_id", id, "employer_id", employerID)
	return nil
}

// GetJob returns any job by id.
func (a *App) GetJob(ctx context.Context, id string) (domain.Job, error) {
	job, ok, err := a.store.GetJob(ctx, id)
	if err != nil {
		return domain.Job{}, fmt.Errorf("fetch job: %w", err)
	}
	if !ok {
		return domain.Job{}, ErrJobNotFound
	}
	return job, nil
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Page  int
	Limit int
	Total int64
	Jobs  []domain.Job
}

// SearchJobs runs a public search. The caller validates page and limit.
func (a *App) SearchJobs(ctx context.Context, f domain.JobFilter) (SearchResult, error) {
	f.Query = strings.TrimSpace(f.Query)
	f.Location = strings.TrimSpace(f.Location)
	f.EmploymentType = strings.TrimSpace(f.EmploymentType)
	jobs, total, err := a.store.SearchJobs(ctx, f)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Page: f.Page, Limit: f.Limit, Total: total, Jobs: jobs}, nil
}

func (a *App) ownedJob(ctx context.Context, employerID, id string) (domain.Job, error) {
	job, ok, err := a.store.GetEmployerJob(ctx, id, employerID)
	if err != nil {
		return domain.Job{}, fmt.Errorf("fetch job: %w", err)
	}
	if !ok {
		return domain.Job{}, ErrJobNotFound
	}
	return job, nil
}

func (a *App) save(ctx context.Context, job domain.Job) (domain.Job, error) {
	job.UpdatedAt = a.now().UTC()
	updated, err := a.store.UpdateJob(ctx, job)
	if err != nil {
		return domain.Job{}, err
	}
	if !updated {
		// deleted between read and write
		return domain.Job{}, ErrJobNotFound
	}
	util.LoggerFromContext(ctx).Info("job updated", "job_id", job.ID)
	return job, nil
}

func applyInput(job *domain.Job, in JobInput) {
	job.Title = in.Title
	job.Description = in.Description
	job.Requirements = normalizeList(in.Requirements)
	job.Salary = in.Salary
	job.SalaryFrom = in.Salary
	job.SalaryTo = in.Salary
	job.Currency = in.Currency
	job.Location = in.Location
	job.EmploymentType = in.EmploymentType
	job.CompanyName = companyOrDefault(in.CompanyName)
}

func companyOrDefault(name string) string {
	if strings.TrimSpace(name) == "" {
		return domain.DefaultCompanyName
	}
	return strings.TrimSpace(name)
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	return append(out, in...)
}
