package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medinova/health-claims-api/internal/model"
)

// UserRepo persists application users.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, email, phone_number, first_name, last_name, password_hash,
role, status, is_verified, created_at, updated_at, last_login_at`

// CreateInput carries the fields needed to insert a user.  The password
// must already be hashed by the caller.
type CreateInput struct {
	Email        string
	PhoneNumber  *string
	FirstName    *string
	LastName     *string
	PasswordHash string
	Role         model.UserRole
	Status       model.UserStatus
}

// Create inserts a user and returns the stored record.  Unique constraint
// violations on email or phone map to ErrEmailExists / ErrPhoneExists.
func (r *UserRepo) Create(ctx context.Context, in CreateInput) (model.User, error) {
	id := uuid.NewString()
	email := strings.ToLower(strings.TrimSpace(in.Email))
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (id, email, phone_number, first_name, last_name, password_hash, role, status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		id, email, in.PhoneNumber, in.FirstName, in.LastName, in.PasswordHash,
		string(in.Role), string(in.Status))
	if err != nil {
		return model.User{}, mapDuplicate(err)
	}
	return r.GetByID(ctx, id)
}

// mapDuplicate translates MySQL duplicate-key errors (1062) into the
// appropriate sentinel based on which unique index was hit.
func mapDuplicate(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "phone") {
		return ErrPhoneExists
	}
	return ErrEmailExists
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByPhone fetches a user by phone number.
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE phone_number=? LIMIT 1", phone))
}

// List returns a page of users ordered by creation time.
func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []model.User{}
	for rows.Next() {
		u, err := scanUserRows(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count returns the total number of user rows.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// UpdateInput carries the mutable profile fields.  Nil means "leave as is".
type UpdateInput struct {
	Email       *string
	PhoneNumber *string
	FirstName   *string
	LastName    *string
}

// Update applies the provided profile changes and returns the stored
// record, or ErrNotFound when the user does not exist.
func (r *UserRepo) Update(ctx context.Context, id string, in UpdateInput) (model.User, error) {
	sets := []string{}
	args := []interface{}{}
	if in.Email != nil {
		sets = append(sets, "email=?")
		args = append(args, strings.ToLower(strings.TrimSpace(*in.Email)))
	}
	if in.PhoneNumber != nil {
		sets = append(sets, "phone_number=?")
		args = append(args, *in.PhoneNumber)
	}
	if in.FirstName != nil {
		sets = append(sets, "first_name=?")
		args = append(args, *in.FirstName)
	}
	if in.LastName != nil {
		sets = append(sets, "last_name=?")
		args = append(args, *in.LastName)
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := r.DB.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(sets, ", ")+", updated_at=UTC_TIMESTAMP() WHERE id=?", args...)
		if err != nil {
			return model.User{}, mapDuplicate(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Either absent or a no-op update; disambiguate with a read.
			if _, err := r.GetByID(ctx, id); err != nil {
				return model.User{}, err
			}
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a user. Verification tokens go with it via the ON DELETE
// CASCADE on verification_tokens.user_id.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkVerified flips the is_verified flag and activates the account.
func (r *UserRepo) MarkVerified(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_verified=1, status=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
		string(model.UserActive), id)
	return err
}

// TouchLastLogin stamps the user's last successful authentication.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET last_login_at=? WHERE id=?", at.UTC(), id)
	return err
}

func scanUser(row *sql.Row) (model.User, error) {
	u, err := scanUserRows(row)
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

func scanUserRows(s rowScanner) (model.User, error) {
	var (
		u           model.User
		phone       sql.NullString
		first, last sql.NullString
		role        string
		status      string
		lastLogin   sql.NullTime
	)
	err := s.Scan(&u.ID, &u.Email, &phone, &first, &last, &u.PasswordHash,
		&role, &status, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt, &lastLogin)
	if err != nil {
		return model.User{}, err
	}
	if phone.Valid {
		v := phone.String
		u.PhoneNumber = &v
	}
	if first.Valid {
		v := first.String
		u.FirstName = &v
	}
	if last.Valid {
		v := last.String
		u.LastName = &v
	}
	u.Role = model.UserRole(role)
	u.Status = model.UserStatus(status)
	if lastLogin.Valid {
		v := lastLogin.Time
		u.LastLoginAt = &v
	}
	return u, nil
}
