package app

import "jobboard/internal/apperr"

var (
	ErrJobNotFound         = apperr.NewNotFound("Job not found")
	ErrResumeNotFound      = apperr.NewNotFound("Resume not found")
	ErrApplicationNotFound = apperr.NewNotFound("Application not found")
	ErrAlreadyProcessed    = apperr.NewConflict("Application already processed")
	ErrAccessDenied        = apperr.NewForbidden("Access denied")
)
