package domain

import "errors"

var (
	// ErrUnauthenticated is returned when an operation requires a session
	// and none is active (or the stored token has expired).
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUnauthorized is returned when the session is valid but the caller
	// is not the owning or addressed party.
	ErrUnauthorized = errors.New("not authorized")
	// ErrNotFound indicates a referenced entity id or email does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail indicates another user already registered the email.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSelfInvite is returned when a user invites their own email.
	ErrSelfInvite = errors.New("cannot invite yourself")
	// ErrAlreadyPending indicates a pending invite already exists for the pair.
	ErrAlreadyPending = errors.New("invite already pending")
	// ErrAlreadyFriends indicates the pair already has an accepted friendship.
	ErrAlreadyFriends = errors.New("already friends")
)
