package service

import "errors"

var (
	// ErrValidation wraps credential validation failures (username/email
	// format, password policy). The wrapped message is safe to return to
	// the client.
	ErrValidation = errors.New("validation failed")

	ErrInviteCodeRequired      = errors.New("Invite code required")
	ErrInviteCodeInvalid       = errors.New("Invalid invite code")
	ErrCodeAssignmentExhausted = errors.New("could not assign a unique invite code")
	// ErrPartialRegistration means the user row was created but the invite
	// record was not. The account exists; the referral is lost unless
	// reconciled out of band.
	ErrPartialRegistration = errors.New("registration partially failed")

	ErrUserAlreadyExists  = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("user is disabled")
)
