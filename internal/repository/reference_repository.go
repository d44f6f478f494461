package repository

import (
	"context"
	"database/sql"

	"github.com/medinova/health-claims-api/internal/model"
)

// ReferenceRepo provides read-only access to the diagnosis and procedure
// code tables. Both are pure reference data: seeded out of band, looked up
// by code during claim validation, never mutated by the API.
type ReferenceRepo struct{ DB *sql.DB }

func NewReferenceRepo(db *sql.DB) *ReferenceRepo { return &ReferenceRepo{DB: db} }

// DiagnosisByCode fetches a diagnosis reference row.
func (r *ReferenceRepo) DiagnosisByCode(ctx context.Context, code string) (model.Diagnosis, error) {
	return scanDiagnosis(r.DB.QueryRowContext(ctx,
		"SELECT code, description, created_at FROM diagnoses WHERE code=? LIMIT 1", code))
}

// DiagnosisTx is DiagnosisByCode scoped to an existing transaction.
func (r *ReferenceRepo) DiagnosisTx(ctx context.Context, tx *sql.Tx, code string) (model.Diagnosis, error) {
	return scanDiagnosis(tx.QueryRowContext(ctx,
		"SELECT code, description, created_at FROM diagnoses WHERE code=? LIMIT 1", code))
}

// ProcedureByCode fetches a procedure reference row including its average
// cost, the baseline for fraud scoring.
func (r *ReferenceRepo) ProcedureByCode(ctx context.Context, code string) (model.Procedure, error) {
	return scanProcedure(r.DB.QueryRowContext(ctx,
		"SELECT code, description, average_cost, created_at FROM procedures WHERE code=? LIMIT 1", code))
}

// ProcedureTx is ProcedureByCode scoped to an existing transaction.
func (r *ReferenceRepo) ProcedureTx(ctx context.Context, tx *sql.Tx, code string) (model.Procedure, error) {
	return scanProcedure(tx.QueryRowContext(ctx,
		"SELECT code, description, average_cost, created_at FROM procedures WHERE code=? LIMIT 1", code))
}

func scanDiagnosis(row *sql.Row) (model.Diagnosis, error) {
	var d model.Diagnosis
	err := row.Scan(&d.Code, &d.Description, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Diagnosis{}, ErrNotFound
	}
	return d, err
}

func scanProcedure(row *sql.Row) (model.Procedure, error) {
	var p model.Procedure
	err := row.Scan(&p.Code, &p.Description, &p.AverageCost, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Procedure{}, ErrNotFound
	}
	return p, err
}
