// Command seeder loads a small set of demo members, providers, diagnoses and
// procedures so the API can be exercised locally. It is idempotent: when the
// members table already has rows it exits without touching anything.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/medinova/health-claims-api/internal/config"
	"github.com/medinova/health-claims-api/internal/database"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM members").Scan(&count); err != nil {
		log.Fatalf("count members: %v", err)
	}
	if count > 0 {
		log.Printf("members table already has %d rows, skipping", count)
		return
	}

	if err := seed(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seeded 3 members, 3 providers, 4 diagnoses, 5 procedures")
}

func seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	members := [][]any{
		{"M123", "John Doe", "john.doe@example.com", "+254700000001", "ACTIVE", "100000.00", "0.00"},
		{"M124", "Jane Smith", "jane.smith@example.com", "+254700000002", "ACTIVE", "50000.00", "10000.00"},
		{"M125", "Bob Johnson", "bob.johnson@example.com", "+254700000003", "INACTIVE", "75000.00", "0.00"},
	}
	for _, m := range members {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO members (id, name, email, phone_number, status, benefit_limit, used_benefit, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(), UTC_TIMESTAMP())`, m...); err != nil {
			return err
		}
	}

	providers := [][]any{
		{"H456", "Nairobi General Hospital", true},
		{"H457", "Mombasa Medical Center", true},
		{"H458", "Kisumu Health Clinic", false},
	}
	for _, p := range providers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO providers (id, name, is_active, created_at, updated_at)
			 VALUES (?, ?, ?, UTC_TIMESTAMP(), UTC_TIMESTAMP())`, p...); err != nil {
			return err
		}
	}

	diagnoses := [][]any{
		{"D001", "Malaria"},
		{"D002", "Typhoid Fever"},
		{"D003", "Pneumonia"},
		{"D004", "Diabetes Type 2"},
	}
	for _, d := range diagnoses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO diagnoses (code, description, created_at) VALUES (?, ?, UTC_TIMESTAMP())`, d...); err != nil {
			return err
		}
	}

	procedures := [][]any{
		{"P001", "General Consultation", "5000.00"},
		{"P002", "Blood Test Panel", "8000.00"},
		{"P003", "X-Ray Imaging", "12000.00"},
		{"P004", "Minor Surgery", "25000.00"},
		{"P005", "Hospital Admission (3 days)", "45000.00"},
	}
	for _, p := range procedures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO procedures (code, description, average_cost, created_at) VALUES (?, ?, ?, UTC_TIMESTAMP())`, p...); err != nil {
			return err
		}
	}

	return tx.Commit()
}
