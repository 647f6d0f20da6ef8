package app

import "jobboard/internal/apperr"

var (
	ErrInvalidRating  = apperr.NewBadRequest("Rating must be between 1 and 5")
	ErrJobIDRequired  = apperr.NewUnprocessable("job_id: job_id is required")
	ErrJobNotFound    = apperr.NewNotFound("Job not found")
	ErrReviewExists   = apperr.NewConflict("Review for this job already exists")
	ErrReviewNotFound = apperr.NewNotFound("Review not found")
	ErrNotAuthor      = apperr.NewForbidden("User is not the author of this review")
)
