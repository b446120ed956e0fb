package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateInviteCode is returned when an invite code collides with
	// an existing user's code
	ErrDuplicateInviteCode = errors.New("invite code already in use")
)
