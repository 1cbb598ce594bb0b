package types

import "errors"

var (
	// ErrPermissionDenied is returned when a downvote or delete is
	// attempted by a user lacking the required reputation, ownership,
	// or superuser status.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUserNotFound is returned when a user lookup matches no record.
	ErrUserNotFound = errors.New("user not found")

	// ErrTipNotFound is returned when a tip lookup matches no record.
	ErrTipNotFound = errors.New("tip not found")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmptyUsername is returned when registering a blank username.
	ErrEmptyUsername = errors.New("username cannot be empty")

	// ErrInvalidCredentials is returned on failed login attempts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrEmptyContent is returned when submitting a blank tip.
	ErrEmptyContent = errors.New("tip content cannot be empty")
)
