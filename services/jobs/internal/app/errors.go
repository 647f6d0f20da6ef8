package app

import "jobboard/internal/apperr"

var ErrJobNotFound = apperr.NewNotFound("Job not found")
