package app

import "jobboard/internal/apperr"

var (
	ErrAlreadySubscribed = apperr.NewConflict("User already subscribed")
	ErrUserNotFound      = apperr.NewNotFound("User not found")
	ErrTemplateNotFound  = apperr.NewNotFound("Email template not found")
)
