package model

import "time"

// VerificationToken models an entry in the `verification_tokens` table.
// Each token belongs to a user and stores only the SHA‑256 hash of a
// one-time passcode; the plaintext is handed to the delivery channel and
// never persisted.  A token is invalidated when consumed or when replaced
// by a freshly issued token, and is physically deleted only through the
// owning user's cascade.
//
// Fields:
//  ID        – UUID primary key.
//  UserID    – owner of the token.
//  TokenHash – SHA‑256 hex digest of the passcode.
//  Type      – purpose tag (LOGIN, INITIAL_VERIFICATION, PASSWORD_RESET).
//  IsValid   – false once consumed or superseded.
//  ExpiresAt – expiration timestamp of the passcode.
//  CreatedAt – timestamp of creation.
type VerificationToken struct {
	ID        string           // verification_tokens.id (UUID)
	UserID    string           // verification_tokens.user_id
	TokenHash string           // verification_tokens.token_hash
	Type      VerificationType // verification_tokens.token_type
	IsValid   bool             // verification_tokens.is_valid
	ExpiresAt time.Time        // verification_tokens.expires_at
	CreatedAt time.Time        // verification_tokens.created_at
}

// IsExpired reports whether the token is past its expiry in UTC.
func (t VerificationToken) IsExpired() bool {
	return time.Now().UTC().After(t.ExpiresAt)
}
