package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/medinova/health-claims-api/internal/model"
	"github.com/medinova/health-claims-api/internal/repository"
)

// Authenticator combines credential checks with account-status gating.  It
// does not mint tokens itself; handlers call the token functions once a
// user has been authenticated so the session id lives at the HTTP layer.
type Authenticator struct {
	Users *repository.UserRepo
	OTP   *OTPEngine
}

func NewAuthenticator(users *repository.UserRepo, otp *OTPEngine) *Authenticator {
	if users == nil || otp == nil {
		panic("nil dependency passed to NewAuthenticator")
	}
	return &Authenticator{Users: users, OTP: otp}
}

// LookupByIdentifier resolves a login identifier to a user: identifiers
// containing "@" are treated as emails, anything else as a phone number.
func (a *Authenticator) LookupByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return a.Users.GetByEmail(ctx, identifier)
	}
	return a.Users.GetByPhone(ctx, identifier)
}

// gate enforces account-status rules shared by every login path.
func gate(u model.User) error {
	switch u.Status {
	case model.UserInactive:
		return ErrUserInactive
	case model.UserSuspended:
		return ErrUserSuspended
	case model.UserActive:
		return nil
	}
	// Unknown status values never authenticate.
	return ErrInvalidCredentials
}

// AuthenticatePassword runs the password login path: identifier lookup,
// status gating, bcrypt verification.
func (a *Authenticator) AuthenticatePassword(ctx context.Context, identifier, password string) (model.User, error) {
	user, err := a.LookupByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	if err := gate(user); err != nil {
		return model.User{}, err
	}
	if !VerifyPassword(user.PasswordHash, password) || user.Status != model.UserActive {
		return model.User{}, ErrInvalidCredentials
	}
	a.touchLogin(ctx, user.ID)
	return user, nil
}

// AuthenticateOTP runs the OTP login path: identifier lookup, status
// gating, then the latest still-valid LOGIN token is checked against the
// submitted code and consumed on success so it cannot be replayed.
//
// An unverified INACTIVE account is a special case: its pending
// INITIAL_VERIFICATION token is accepted instead, and passing it both
// verifies and activates the account before the login completes.
func (a *Authenticator) AuthenticateOTP(ctx context.Context, identifier, code string) (model.User, error) {
	user, err := a.LookupByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}

	if user.Status == model.UserInactive && !user.IsVerified {
		return a.completeInitialVerification(ctx, user, code)
	}
	if err := gate(user); err != nil {
		return model.User{}, err
	}

	token, err := a.OTP.Tokens.LatestValid(ctx, user.ID, model.VerificationLogin)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrInvalidOTP
		}
		return model.User{}, err
	}
	if token.IsExpired() || !VerifyOTP(token.TokenHash, code) {
		return model.User{}, ErrInvalidOTP
	}

	if err := a.OTP.Consume(ctx, token); err != nil {
		return model.User{}, err
	}
	a.touchLogin(ctx, user.ID)
	return user, nil
}

// completeInitialVerification checks the pending INITIAL_VERIFICATION
// token and, on success, marks the account verified and ACTIVE.
func (a *Authenticator) completeInitialVerification(ctx context.Context, user model.User, code string) (model.User, error) {
	token, err := a.OTP.Tokens.LatestValid(ctx, user.ID, model.VerificationInitial)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, ErrInvalidOTP
		}
		return model.User{}, err
	}
	if token.IsExpired() || !VerifyOTP(token.TokenHash, code) {
		return model.User{}, ErrInvalidOTP
	}
	if err := a.OTP.Consume(ctx, token); err != nil {
		return model.User{}, err
	}
	if err := a.Users.MarkVerified(ctx, user.ID); err != nil {
		return model.User{}, err
	}
	user.IsVerified = true
	user.Status = model.UserActive
	a.touchLogin(ctx, user.ID)
	return user, nil
}

// RefreshAccess validates a refresh token and returns the user together
// with the session id to re-embed into the new access token.  The refresh
// token itself is not rotated; it stays valid until natural expiry.
func (a *Authenticator) RefreshAccess(ctx context.Context, secret, refreshToken string) (model.User, string, error) {
	claims, err := DecodeToken(secret, refreshToken, false, true)
	if err != nil {
		return model.User{}, "", err
	}
	user, err := a.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, "", ErrUnauthorized
		}
		return model.User{}, "", err
	}
	if user.Status != model.UserActive {
		return model.User{}, "", ErrUnauthorized
	}
	return user, claims.SessionID, nil
}

// touchLogin stamps last_login_at; failures are deliberately ignored since
// the stamp is informational and the user is already authenticated.
func (a *Authenticator) touchLogin(ctx context.Context, userID string) {
	_ = a.Users.TouchLastLogin(ctx, userID, time.Now().UTC())
}
