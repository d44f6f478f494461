package auth // package auth implements passcodes, tokens and the login flows

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"math/big"
	"strconv"
	"time"

	"github.com/medinova/health-claims-api/internal/model"
	"github.com/medinova/health-claims-api/internal/repository"
)

// otpRange covers the six-digit codes 100000–999999: fixed width, leading
// digit never zero.
var otpRange = big.NewInt(900000)

// GenerateOTP returns a uniformly random six-digit passcode.  It draws from
// crypto/rand; the codes are short-lived and additionally protected by the
// rate limiter on the request endpoints.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// HashOTP returns the SHA‑256 hex digest of a passcode.  OTPs are not run
// through a slow password hash: they expire in minutes and brute force is
// stopped at the rate limiter, not the digest.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// VerifyOTP recomputes the digest of the submitted code and compares it
// against the stored hash in constant time.
func VerifyOTP(storedHash, submitted string) bool {
	digest := HashOTP(submitted)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(digest)) == 1
}

// OTPEngine issues, refreshes and consumes verification tokens.  Plaintext
// codes exist only in the return values, for out-of-band delivery; the
// store only ever sees digests.
type OTPEngine struct {
	Tokens *repository.VerificationTokenRepo
}

func NewOTPEngine(tokens *repository.VerificationTokenRepo) *OTPEngine {
	return &OTPEngine{Tokens: tokens}
}

// Issue creates a fresh verification token for the user and purpose,
// expiring after ttl, and returns the record plus the plaintext code.
func (e *OTPEngine) Issue(ctx context.Context, userID string, typ model.VerificationType, ttl time.Duration) (model.VerificationToken, string, error) {
	code, err := GenerateOTP()
	if err != nil {
		return model.VerificationToken{}, "", err
	}
	expiresAt := time.Now().UTC().Add(ttl)
	token, err := e.Tokens.Create(ctx, userID, HashOTP(code), typ, expiresAt)
	if err != nil {
		return model.VerificationToken{}, "", err
	}
	return token, code, nil
}

// Refresh invalidates the old token and issues a replacement for the same
// user and purpose. Used by resend flows.
func (e *OTPEngine) Refresh(ctx context.Context, oldTokenID string, ttl time.Duration) (model.VerificationToken, string, error) {
	old, err := e.Tokens.GetByID(ctx, oldTokenID)
	if err != nil {
		return model.VerificationToken{}, "", err
	}
	if err := e.Tokens.Supersede(ctx, old.ID); err != nil {
		return model.VerificationToken{}, "", err
	}
	return e.Issue(ctx, old.UserID, old.Type, ttl)
}

// Consume marks a token as spent so the code cannot be replayed.  Called
// exactly once per successful authentication.
func (e *OTPEngine) Consume(ctx context.Context, token model.VerificationToken) error {
	return e.Tokens.Invalidate(ctx, token.ID)
}

// LookupValid returns the unexpired, still-valid token matching the given
// hashed code, or repository.ErrNotFound.
func (e *OTPEngine) LookupValid(ctx context.Context, hashedCode string) (model.VerificationToken, error) {
	return e.Tokens.GetValidByHash(ctx, hashedCode)
}
