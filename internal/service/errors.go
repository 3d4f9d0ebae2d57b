package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when an email/password pair (or the
	// old password of a change request) does not match a stored account.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConfirmationMismatch is returned when the new password and its
	// confirmation differ.
	ErrConfirmationMismatch = errors.New("new password must be confirmed")

	// ErrUnauthenticated is returned by identity resolution whatever step
	// failed; the cause is wrapped for logging only.
	ErrUnauthenticated = errors.New("please authenticate")

	// ErrInvalidUpdates is returned when a task update carries a key outside
	// the allowed set.
	ErrInvalidUpdates = errors.New("invalid updates")

	ErrTokenSignKeyMissing = errors.New("token sign key is not specified")
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is the common kind of every verification
	// failure below.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrTokenMalformed    = fmt.Errorf("%w: token is malformed", ErrTokenIsExpiredOrInvalid)
	ErrTokenBadSignature = fmt.Errorf("%w: token signature is invalid", ErrTokenIsExpiredOrInvalid)
	ErrTokenIsExpired    = fmt.Errorf("%w: token is expired", ErrTokenIsExpiredOrInvalid)
)
