package auth

import "errors"

// Sentinel errors for authentication outcomes. Handlers translate these
// into HTTP statuses; the messages are the stable client-facing texts.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUserSuspended      = errors.New("user is suspended")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("could not validate credentials")
	ErrUnauthorized       = errors.New("user inactive or deleted")
)
