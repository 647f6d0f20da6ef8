package app

import "jobboard/internal/apperr"

var (
	ErrProfileNotFound = apperr.NewNotFound("Profile not found")
	ErrResumeNotFound  = apperr.NewNotFound("Resume not found")
)
