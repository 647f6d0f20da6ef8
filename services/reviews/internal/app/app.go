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
	pgstore "jobboard/pkg/store"
	"jobboard/services/reviews/internal/store"
)

const (
	minRating = 1
	maxRating = 5
)

// Config holds dependencies for the reviews core.
type Config struct {
	DatabaseURL string
	Store       store.Store
	Oracle      oracle.ExistenceOracle
}

// App manages candidates' reviews of jobs.
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

// ReviewInput is the editable content of a review.
type ReviewInput struct {
	Rating      int
	Comment     string
	IsAnonymous bool
}

// CreateReview stores the author's single review of jobID.
func (a *App) CreateReview(ctx context.Context, authorID, jobID string, in ReviewInput) (domain.Review, error) {
	if err := checkRating(in.Rating); err != nil {
		return domain.Review{}, err
	}
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return domain.Review{}, ErrJobIDRequired
	}
	ok, err := a.oracle.JobExists(ctx, jobID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("check job: %w", err)
	}
	if !ok {
		return domain.Review{}, ErrJobNotFound
	}

	now := a.now().UTC()
	review := domain.Review{
		ID:          util.PrefixedID("rev"),
		JobID:       jobID,
		AuthorID:    authorID,
		Rating:      in.Rating,
		Comment:     in.Comment,
		IsAnonymous: in.IsAnonymous,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.CreateReview(ctx, review); err != nil {
		if pgstore.IsDuplicate(err) {
			return domain.Review{}, ErrReviewExists
		}
		return domain.Review{}, fmt.Errorf("save review: %w", err)
	}
	util.LoggerFromContext(ctx).Info("review created", "review_id", review.ID, "job_id", jobID)
	return review, nil
}

// UpdateReview rewrites a review owned by authorID.
func (a *App) UpdateReview(ctx context.Context, authorID, id string, in ReviewInput) (domain.Review, error) {
	if err := checkRating(in.Rating); err != nil {
		return domain.Review{}, err
	}
	review, ok, err := a.store.GetReview(ctx, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("fetch review: %w", err)
	}
	if !ok {
		return domain.Review{}, ErrReviewNotFound
	}
	if review.AuthorID != authorID {
		return domain.Review{}, ErrNotAuthor
	}
	review.Rating = in.Rating
	review.Comment = in.Comment
	review.IsAnonymous = in.IsAnonymous
	review.UpdatedAt = a.now().UTC()
	updated, err := a.store.UpdateReview(ctx, review)
	if err != nil {
		return domain.Review{}, err
	}
	if !updated {
		return domain.Review{}, ErrReviewNotFound
	}
	return review, nil
}

func checkRating(r int) error {
	return CheckRatingValue(float64(r))
}

// CheckRatingValue reports ErrInvalidRating for any number outside the
// allowed range, fractional values included.
func CheckRatingValue(v float64) error {
	if v < minRating || v > maxRating {
		return ErrInvalidRating
	}
	return nil
}
