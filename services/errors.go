package services

import "errors"

// Common service-level errors
var (
	// Auth errors
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Entity errors
	ErrContactNotFound = errors.New("contact not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
)
