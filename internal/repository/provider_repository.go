package repository

import (
	"context"
	"database/sql"

	"github.com/medinova/health-claims-api/internal/model"
)

// ProviderRepo provides read-only access to the providers table.
type ProviderRepo struct{ DB *sql.DB }

func NewProviderRepo(db *sql.DB) *ProviderRepo { return &ProviderRepo{DB: db} }

// GetByID fetches a provider by its external identifier.
func (r *ProviderRepo) GetByID(ctx context.Context, id string) (model.Provider, error) {
	return scanProvider(r.DB.QueryRowContext(ctx,
		"SELECT id, name, is_active, created_at, updated_at FROM providers WHERE id=? LIMIT 1", id))
}

// GetTx is GetByID scoped to an existing transaction so the claim pipeline
// sees a consistent snapshot while it holds the member lock.
func (r *ProviderRepo) GetTx(ctx context.Context, tx *sql.Tx, id string) (model.Provider, error) {
	return scanProvider(tx.QueryRowContext(ctx,
		"SELECT id, name, is_active, created_at, updated_at FROM providers WHERE id=? LIMIT 1", id))
}

func scanProvider(row *sql.Row) (model.Provider, error) {
	var p model.Provider
	err := row.Scan(&p.ID, &p.Name, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Provider{}, ErrNotFound
	}
	return p, err
}
