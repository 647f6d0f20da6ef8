package app

import "jobboard/internal/apperr"

var (
	ErrActiveVerification   = apperr.NewConflict("Active verification already exists for this user")
	ErrSubmitFailed         = apperr.NewUnprocessable("Failed to send data to external service")
	ErrVerificationNotFound = apperr.NewNotFound("Verification not found")
	ErrAccessDenied         = apperr.NewForbidden("Access denied to this verification")
)
