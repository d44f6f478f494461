package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/medinova/health-claims-api/internal/model"
)

// MemberRepo provides read access to members and the single mutation the
// system performs on them: increasing used_benefit during adjudication.
type MemberRepo struct{ DB *sql.DB }

func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{DB: db} }

const memberColumns = "id, name, email, phone_number, status, benefit_limit, used_benefit, created_at, updated_at"

func scanMember(row *sql.Row) (model.Member, error) {
	var (
		m      model.Member
		phone  sql.NullString
		status string
	)
	err := row.Scan(&m.ID, &m.Name, &m.Email, &phone, &status,
		&m.BenefitLimit, &m.UsedBenefit, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Member{}, ErrNotFound
		}
		return model.Member{}, err
	}
	if phone.Valid {
		p := phone.String
		m.PhoneNumber = &p
	}
	m.Status = model.MemberStatus(status)
	return m, nil
}

// GetByID fetches a member by its external identifier.
func (r *MemberRepo) GetByID(ctx context.Context, id string) (model.Member, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE id=? LIMIT 1", id)
	return scanMember(row)
}

// GetForUpdateTx fetches a member inside the given transaction and takes a
// row lock on it. Claim adjudication uses this to serialize concurrent
// benefit increments for the same member.
func (r *MemberRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (model.Member, error) {
	row := tx.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE id=? FOR UPDATE", id)
	return scanMember(row)
}

// AddUsedBenefitTx increases the member's consumed benefit within the given
// transaction. Callers must hold the row lock from GetForUpdateTx.
func (r *MemberRepo) AddUsedBenefitTx(ctx context.Context, tx *sql.Tx, id string, amount decimal.Decimal) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE members SET used_benefit = used_benefit + ?, updated_at = UTC_TIMESTAMP() WHERE id=?",
		amount, id)
	return err
}
