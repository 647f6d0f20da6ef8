package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/util"
	"jobboard/pkg/domain"
	"jobboard/pkg/oracle"
	"jobboard/services/applications/internal/store"
)

// Config holds dependencies for the applications core.
type Config struct {
	DatabaseURL string
	Store       store.Store
	// Oracle answers whether the referenced job and resume exist;
	// nil trusts every reference.
	Oracle oracle.ExistenceOracle
}

// App manages candidates' applications and employer decisions on them.
type App struct {
	store  store.Store
	oracle oracle.ExistenceOracle
	now    func() time.Time
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
	orc := cfg.Oracle
	if orc == nil {
		orc = oracle.AlwaysExists{}
	}
	return &App{store: st, oracle: orc, now: time.Now}, nil
}

// ApplyInput is a candidate's application.
type ApplyInput struct {
	JobID       string
	ResumeID    string
	CoverLetter string
}

// Apply records a pending application after checking the job and resume.
func (a *App) Apply(ctx context.Context, candidateID string, in ApplyInput) (domain.Application, error) {
	jobID := strings.TrimSpace(in.JobID)
	resumeID := strings.TrimSpace(in.ResumeID)
	ok, err := a.oracle.JobExists(ctx, jobID)
	if err != nil {
		return domain.Application{}, fmt.Errorf("check job: %w", err)
	}
	if !ok {
		return domain.Application{}, ErrJobNotFound
	}
	ok, err = a.oracle.ResumeExists(ctx, resumeID, candidateID)
	if err != nil {
		return domain.Application{}, fmt.Errorf("check resume: %w", err)
	}
	if !ok {
		return domain.Application{}, ErrResumeNotFound
	}

	now := a.now().UTC()
	application := domain.Application{
		ID:          util.PrefixedID("app"),
		JobID:       jobID,
		ResumeID:    resumeID,
		CandidateID: candidateID,
		CoverLetter: in.CoverLetter,
		Status:      domain.ApplicationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.CreateApplication(ctx, application); err != nil {
		return domain.Application{}, fmt.Errorf("save application: %w", err)
	}
	util.LoggerFromContext(ctx).Info("application submitted", "application_id", application.ID, "job_id", jobID, "candidate_id", candidateID)
	return application, nil
}

// GetApplication returns an application to the candidate who filed it.
func (a *App) GetApplication(ctx context.Context, candidateID, id string) (domain.Application, error) {
	application, err := a.lookup(ctx, id)
	if err != nil {
		return domain.Application{}, err
	}
	if application.CandidateID != candidateID {
		return domain.Application{}, ErrAccessDenied
	}
	return application, nil
}

// Accept marks a pending application accepted.
func (a *App) Accept(ctx context.Context, id, comment string) (domain.Application, error) {
	return a.resolve(ctx, id, domain.ApplicationAccepted, comment)
}

// Reject marks a pending application rejected.
func (a *App) Reject(ctx context.Context, id, comment string) (domain.Application, error) {
	return a.resolve(ctx, id, domain.ApplicationRejected, comment)
}

func (a *App) resolve(ctx context.Context, id string, status domain.ApplicationStatus, comment string) (domain.Application, error) {
	application, err := a.lookup(ctx, id)
	if err != nil {
		return domain.Application{}, err
	}
	if application.Status != domain.ApplicationPending {
		return domain.Application{}, ErrAlreadyProcessed
	}
	now := a.now().UTC()
	won, err := a.store.Resolve(ctx, id, status, comment, now)
	if err != nil {
		return domain.Application{}, err
	}
	if !won {
		return domain.Application{}, ErrAlreadyProcessed
	}
	application.Status = status
	application.Comment = comment
	application.UpdatedAt = now
	util.LoggerFromContext(ctx).Info("application resolved", "application_id", id, "status", string(status))
	return application, nil
}

func (a *App) lookup(ctx context.Context, id string) (domain.Application, error) {
	application, ok, err := a.store.GetApplication(ctx, id)
	if err != nil {
		return domain.Application{}, fmt.Errorf("fetch application: %w", err)
	}
	if !ok {
		return domain.Application{}, ErrApplicationNotFound
	}
	return application, nil
}
