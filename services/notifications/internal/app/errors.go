package app

import "jobboard/internal/apperr"

var (
	ErrDeviceNotFound = apperr.NewNotFound("Device not found")
	ErrAccessDenied   = apperr.NewForbidden("Access denied")
)
