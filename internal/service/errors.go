package service

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP statuses.
var (
	// ErrUpstreamAuth marks a failed identity-provider call: rejected code,
	// timeout or malformed body. Terminal for the triggering login, never
	// retried automatically.
	ErrUpstreamAuth = errors.New("identity provider request failed")

	// ErrUnknownInviteCode is returned when a referral names an invite code
	// no user owns.
	ErrUnknownInviteCode = errors.New("unknown invite code")

	// ErrSelfInvite is returned when a user tries to redeem their own
	// invite code.
	ErrSelfInvite = errors.New("users cannot invite themselves")

	// ErrAlreadyInvited is returned when the invited user already has a
	// referral record.
	ErrAlreadyInvited = errors.New("user was already invited")
)
