package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/util"
	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
	"jobboard/services/verification/internal/identity"
	"jobboard/services/verification/internal/store"
)

const (
	ReasonRejected   = "Passport verification failed"
	ReasonInProgress = "Verification is in progress"
)

// Config holds dependencies for the verification core.
type Config struct {
	DatabaseURL string
	Store       store.Store
	// Identity checks passports; nil verifies every submission.
	Identity identity.Verifier
}

// App runs passport verifications against the identity registry.
type App struct {
	store    store.Store
	identity identity.Verifier
	now      func() time.Time
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
	idv := cfg.Identity
	if idv == nil {
		idv = identity.Simulated{}
	}
	return &App{store: st, identity: idv, now: time.Now}, nil
}

// PassportInput is the personal and passport data to verify.
type PassportInput struct {
	FirstName   string
	LastName    string
	MiddleName  string
	Passport    domain.Passport
	Citizenship string
}

// Submit records a pending verification and sends it to the registry. If the
// registry refuses it, the record is removed so the user can retry.
func (a *App) Submit(ctx context.Context, userID string, in PassportInput) (domain.Verification, error) {
	now := a.now().UTC()
	v := domain.Verification{
		ID:          util.PrefixedID("verif"),
		UserID:      userID,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		MiddleName:  strings.TrimSpace(in.MiddleName),
		Passport:    in.Passport,
		Citizenship: strings.TrimSpace(in.Citizenship),
		Status:      domain.VerificationPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.CreateVerification(ctx, v); err != nil {
		if pgstore.IsDuplicate(err) {
			return domain.Verification{}, ErrActiveVerification
		}
		return domain.Verification{}, fmt.Errorf("save verification: %w", err)
	}

	logger := util.LoggerFromContext(ctx)
	if err := a.identity.Submit(ctx, v); err != nil {
		logger.Error("identity submission failed", "verification_id", v.ID, "err", err)
		if delErr := a.store.DeleteVerification(ctx, v.ID); delErr != nil {
			logger.Error("failed to remove rejected submission", "verification_id", v.ID, "err", delErr)
		}
		return domain.Verification{}, ErrSubmitFailed
	}
	logger.Info("verification submitted", "verification_id", v.ID, "user_id", userID)
	return v, nil
}

// Status returns the caller's verification, polling the registry while it
// is still pending.
func (a *App) Status(ctx context.Context, userID, id string) (domain.Verification, error) {
	v, err := a.lookup(ctx, id)
	if err != nil {
		return domain.Verification{}, err
	}
	if v.UserID != userID {
		return domain.Verification{}, ErrAccessDenied
	}
	if v.Status != domain.VerificationPending {
		return v, nil
	}

	logger := util.LoggerFromContext(ctx)
	res, err := a.identity.Check(ctx, v)
	if err != nil {
		logger.Warn("identity check failed", "verification_id", v.ID, "err", err)
		return v, nil
	}
	if res.Status == domain.VerificationPending {
		return v, nil
	}

	now := a.now().UTC()
	outcome := store.Outcome{
		Status:          res.Status,
		Reason:          res.Reason,
		PassportValid:   res.PassportValid,
		MatchesRegistry: res.MatchesRegistry,
		At:              now,
	}
	if res.Status == domain.VerificationVerified {
		outcome.VerifiedAt = &now
	}
	won, err := a.store.Resolve(ctx, v.ID, outcome)
	if err != nil {
		return domain.Verification{}, err
	}
	if !won {
		// resolved by a concurrent poll
		return a.lookup(ctx, id)
	}
	logger.Info("verification resolved", "verification_id", v.ID, "status", string(res.Status))
	v.Status = outcome.Status
	v.Reason = outcome.Reason
	v.PassportValid = outcome.PassportValid
	v.MatchesRegistry = outcome.MatchesRegistry
	v.VerifiedAt = outcome.VerifiedAt
	v.UpdatedAt = now
	return v, nil
}

func (a *App) lookup(ctx context.Context, id string) (domain.Verification, error) {
	v, ok, err := a.store.GetVerification(ctx, id)
	if err != nil {
		return domain.Verification{}, fmt.Errorf("fetch verification: %w", err)
	}
	if !ok {
		return domain.Verification{}, ErrVerificationNotFound
	}
	return v, nil
}
