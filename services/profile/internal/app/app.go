package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard/internal/util"
	"jobboard/pkg/domain"
	"jobboard/services/profile/internal/store"
)

// Config holds dependencies for the profile core.
type Config struct {
	DatabaseURL string
	Store       store.Store
}

// App manages a user's own profile and resumes. Every call is scoped to the
// caller's user id.
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

// GetProfile returns the caller's profile.
func (a *App) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	p, ok, err := a.store.GetProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	if !ok {
		return domain.Profile{}, ErrProfileNotFound
	}
	return p, nil
}

// UpdatePassport stores passport data, creating the profile if needed.
func (a *App) UpdatePassport(ctx context.Context, userID string, passport domain.Passport) error {
	return a.upsert(ctx, domain.Profile{UserID: userID, Passport: passport}, store.PassportColumns)
}

// UpdateEmail stores the contact email, creating the profile if needed.
func (a *App) UpdateEmail(ctx context.Context, userID, email string) error {
	return a.upsert(ctx, domain.Profile{UserID: userID, Email: strings.TrimSpace(email)}, store.EmailColumns)
}

// UpdatePhone stores the phone number, creating the profile if needed.
func (a *App) UpdatePhone(ctx context.Context, userID, phone string) error {
	return a.upsert(ctx, domain.Profile{UserID: userID, PhoneNumber: strings.TrimSpace(phone)}, store.PhoneColumns)
}

func (a *App) upsert(ctx context.Context, p domain.Profile, columns []string) error {
	p.UpdatedAt = a.now().UTC()
	if err := a.store.UpsertProfile(ctx, p, columns); err != nil {
		return err
	}
	util.LoggerFromContext(ctx).Info("profile updated", "user_id", p.UserID, "columns", strings.Join(columns, ","))
	return nil
}

// ResumeInput is the body of a new resume.
type ResumeInput struct {
	Title       string
	Position    string
	Skills      []string
	Experience  []domain.Experience
	Education   []domain.Education
	Description string
}

// CreateResume stores a resume under an "r-" prefixed id.
func (a *App) CreateResume(ctx context.Context, userID string, in ResumeInput) (domain.Resume, error) {
	now := a.now().UTC()
	r := domain.Resume{
		ID:          domain.ResumeIDPrefix + uuid.NewString(),
		UserID:      userID,
		Title:       in.Title,
		Position:    in.Position,
		Skills:      orEmpty(in.Skills),
		Experience:  orEmpty(in.Experience),
		Education:   orEmpty(in.Education),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.CreateResume(ctx, r); err != nil {
		return domain.Resume{}, fmt.Errorf("save resume: %w", err)
	}
	util.LoggerFromContext(ctx).Info("resume created", "resume_id", r.ID, "user_id", userID)
	return r, nil
}

// GetResume returns an owned resume. The id may omit the "r-" prefix.
func (a *App) GetResume(ctx context.Context, userID, id string) (domain.Resume, error) {
	r, ok, err := a.store.GetResume(ctx, ResumeID(id), userID)
	if err != nil {
		return domain.Resume{}, fmt.Errorf("fetch resume: %w", err)
	}
	if !ok {
		return domain.Resume{}, ErrResumeNotFound
	}
	return r, nil
}

// PatchResume merges the present fields of p into an owned resume.
func (a *App) PatchResume(ctx context.Context, userID, id string, p domain.ResumePatch) (domain.Resume, error) {
	r, err := a.GetResume(ctx, userID, id)
	if err != nil {
		return domain.Resume{}, err
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Position != nil {
		r.Position = *p.Position
	}
	if p.Skills != nil {
		r.Skills = orEmpty(*p.Skills)
	}
	if p.Experience != nil {
		r.Experience = orEmpty(*p.Experience)
	}
	if p.Education != nil {
		r.Education = orEmpty(*p.Education)
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	r.UpdatedAt = a.now().UTC()
	updated, err := a.store.UpdateResume(ctx, r)
	if err != nil {
		return domain.Resume{}, err
	}
	if !updated {
		return domain.Resume{}, ErrResumeNotFound
	}
	return r, nil
}

// DeleteResume removes an owned resume.
func (a *App) DeleteResume(ctx context.Context, userID, id string) error {
	deleted, err := a.store.DeleteResume(ctx, ResumeID(id), userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrResumeNotFound
	}
	util.LoggerFromContext(ctx).Info("resume deleted", "resume_id", ResumeID(id), "user_id", userID)
	return nil
}

// ResumeID normalizes a client-supplied resume id to its stored form.
func ResumeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, domain.ResumeIDPrefix) {
		return id
	}
	return domain.ResumeIDPrefix + id
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
