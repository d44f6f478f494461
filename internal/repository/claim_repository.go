package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/medinova/health-claims-api/internal/model"
)

// ClaimRepo provides persistence for adjudicated claims.  A claim row is
// written exactly once, inside the transaction that also updates the
// member's consumed benefit; reads never require a transaction.
type ClaimRepo struct{ DB *sql.DB }

// NewClaimRepo returns a new ClaimRepo bound to the given database.
func NewClaimRepo(db *sql.DB) *ClaimRepo { return &ClaimRepo{DB: db} }

const claimColumns = `id, member_id, provider_id, diagnosis_code, procedure_code,
claim_amount, approved_amount, status, fraud_flag, fraud_reason, notes,
created_at, updated_at, processed_at`

// CreateTx inserts a new claim within the scope of an existing transaction.
// It assigns a fresh UUID to the record, queries the row back to populate
// database-generated timestamps, and leaves commit/rollback to the caller.
func (r *ClaimRepo) CreateTx(ctx context.Context, tx *sql.Tx, c *model.Claim) error {
	c.ID = uuid.NewString()
	const q = `INSERT INTO claims
		(id, member_id, provider_id, diagnosis_code, procedure_code,
		 claim_amount, approved_amount, status, fraud_flag, fraud_reason, notes, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.ExecContext(ctx, q,
		c.ID, c.MemberID, c.ProviderID, c.DiagnosisCode, c.ProcedureCode,
		c.ClaimAmount, c.ApprovedAmount, string(c.Status), c.FraudFlag,
		c.FraudReason, c.Notes, c.ProcessedAt)
	if err != nil {
		return err
	}
	// Query back the full row to populate timestamps and defaults.
	row := tx.QueryRowContext(ctx, "SELECT "+claimColumns+" FROM claims WHERE id = ?", c.ID)
	got, err := scanClaimRow(row)
	if err != nil {
		return err
	}
	*c = got
	return nil
}

// GetByID returns a single claim or ErrNotFound.
func (r *ClaimRepo) GetByID(ctx context.Context, id string) (model.Claim, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+claimColumns+" FROM claims WHERE id = ? LIMIT 1", id)
	return scanClaimRow(row)
}

// ClaimFilter narrows List results.  Zero values mean "no filter".
type ClaimFilter struct {
	MemberID   string
	ProviderID string
	Status     model.ClaimStatus
}

// List returns claims matching the filter ordered by creation time
// descending, plus the total number of matching rows before pagination.
func (r *ClaimRepo) List(ctx context.Context, f ClaimFilter, offset, limit int) ([]model.Claim, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	if f.MemberID != "" {
		where += " AND member_id = ?"
		args = append(args, f.MemberID)
	}
	if f.ProviderID != "" {
		where += " AND provider_id = ?"
		args = append(args, f.ProviderID)
	}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, string(f.Status))
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM claims"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + claimColumns + " FROM claims" + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	claims := []model.Claim{}
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, 0, err
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return claims, total, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...interface{}) error }

func scanClaimRow(row *sql.Row) (model.Claim, error) {
	c, err := scanClaim(row)
	if err == sql.ErrNoRows {
		return model.Claim{}, ErrNotFound
	}
	return c, err
}

func scanClaim(s rowScanner) (model.Claim, error) {
	var (
		c           model.Claim
		status      string
		fraudReason sql.NullString
		notes       sql.NullString
		processedAt sql.NullTime
	)
	err := s.Scan(&c.ID, &c.MemberID, &c.ProviderID, &c.DiagnosisCode, &c.ProcedureCode,
		&c.ClaimAmount, &c.ApprovedAmount, &status, &c.FraudFlag, &fraudReason, &notes,
		&c.CreatedAt, &c.UpdatedAt, &processedAt)
	if err != nil {
		return model.Claim{}, err
	}
	c.Status = model.ClaimStatus(status)
	if fraudReason.Valid {
		v := fraudReason.String
		c.FraudReason = &v
	}
	if notes.Valid {
		v := notes.String
		c.Notes = &v
	}
	if processedAt.Valid {
		v := processedAt.Time
		c.ProcessedAt = &v
	}
	return c, nil
}
