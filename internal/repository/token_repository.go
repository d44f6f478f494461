package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/medinova/health-claims-api/internal/model"
)

// VerificationTokenRepo persists one-time-passcode tokens. Only the SHA-256
// hash of a passcode is ever stored.
type VerificationTokenRepo struct{ DB *sql.DB }

func NewVerificationTokenRepo(db *sql.DB) *VerificationTokenRepo {
	return &VerificationTokenRepo{DB: db}
}

const tokenColumns = "id, user_id, token_hash, token_type, is_valid, expires_at, created_at"

// Create inserts a verification token row with is_valid=true.
func (r *VerificationTokenRepo) Create(ctx context.Context, userID, tokenHash string, typ model.VerificationType, expiresAt time.Time) (model.VerificationToken, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO verification_tokens (id, user_id, token_hash, token_type, is_valid, expires_at)
		 VALUES (?,?,?,?,1,?)`,
		id, userID, tokenHash, string(typ), expiresAt.UTC())
	if err != nil {
		return model.VerificationToken{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a token row regardless of validity or expiry.
func (r *VerificationTokenRepo) GetByID(ctx context.Context, id string) (model.VerificationToken, error) {
	return scanToken(r.DB.QueryRowContext(ctx,
		"SELECT "+tokenColumns+" FROM verification_tokens WHERE id=? LIMIT 1", id))
}

// GetValidByHash returns the token matching the given hash, but only when
// it is still valid and unexpired. Used during OTP authentication.
func (r *VerificationTokenRepo) GetValidByHash(ctx context.Context, tokenHash string) (model.VerificationToken, error) {
	return scanToken(r.DB.QueryRowContext(ctx,
		"SELECT "+tokenColumns+` FROM verification_tokens
		 WHERE token_hash=? AND is_valid=1 AND expires_at > UTC_TIMESTAMP() LIMIT 1`,
		tokenHash))
}

// LatestValid returns the most recently issued valid token of the given
// type for a user, ties broken by latest expiry. The expiry check is left
// to the caller so that an expired-but-valid token can be distinguished
// from no token at all.
func (r *VerificationTokenRepo) LatestValid(ctx context.Context, userID string, typ model.VerificationType) (model.VerificationToken, error) {
	return scanToken(r.DB.QueryRowContext(ctx,
		"SELECT "+tokenColumns+` FROM verification_tokens
		 WHERE user_id=? AND token_type=? AND is_valid=1
		 ORDER BY expires_at DESC LIMIT 1`,
		userID, string(typ)))
}

// Invalidate marks a token as spent: is_valid=false and expiry forced to
// now. Idempotent; consuming an already consumed token is a no-op.
func (r *VerificationTokenRepo) Invalidate(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE verification_tokens SET is_valid=0, expires_at=UTC_TIMESTAMP() WHERE id=?", id)
	return err
}

// Supersede invalidates a token without touching its expiry, used when a
// fresh token replaces it in a resend flow.
func (r *VerificationTokenRepo) Supersede(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE verification_tokens SET is_valid=0 WHERE id=?", id)
	return err
}

func scanToken(row *sql.Row) (model.VerificationToken, error) {
	var (
		t   model.VerificationToken
		typ string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &typ, &t.IsValid, &t.ExpiresAt, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return model.VerificationToken{}, ErrNotFound
	}
	if err != nil {
		return model.VerificationToken{}, err
	}
	t.Type = model.VerificationType(typ)
	return t, nil
}
