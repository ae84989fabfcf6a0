// Package storage implements the registration repository on SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/regbot/internal/registration"
)

const upsertQuery = `
INSERT INTO registrations (telegram_id, firstname, lastname, phone, company, activity_type, created_at)
VALUES (:telegram_id, :firstname, :lastname, :phone, :company, :activity_type, :created_at)
ON CONFLICT(telegram_id) DO UPDATE SET
    firstname     = excluded.firstname,
    lastname      = excluded.lastname,
    phone         = excluded.phone,
    company       = excluded.company,
    activity_type = excluded.activity_type`

// RegistrationRepo is the sqlx-backed registration.Repository.
type RegistrationRepo struct {
	db *sqlx.DB
}

// NewRegistrationRepo wraps an open database handle.
func NewRegistrationRepo(db *sqlx.DB) *RegistrationRepo {
	return &RegistrationRepo{db: db}
}

// Upsert inserts or overwrites a registration keyed by telegram_id.
// created_at is written only on first insert; the conflict branch leaves it
// untouched so re-registration keeps the original timestamp.
func (r *RegistrationRepo) Upsert(ctx context.Context, reg *registration.Registration) error {
	if reg == nil {
		return fmt.Errorf("storage: nil registration")
	}
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, upsertQuery, reg); err != nil {
		return fmt.Errorf("storage: upsert registration: %w", err)
	}
	return nil
}

// GetByTelegramID fetches one registration or registration.ErrNotFound.
func (r *RegistrationRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*registration.Registration, error) {
	var reg registration.Registration
	err := r.db.GetContext(ctx, &reg,
		`SELECT id, telegram_id, firstname, lastname, phone, company, activity_type, created_at
		 FROM registrations WHERE telegram_id = ?`, telegramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registration.ErrNotFound
		}
		return nil, fmt.Errorf("storage: get registration: %w", err)
	}
	return &reg, nil
}

// Count returns the number of stored registrations.
func (r *RegistrationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM registrations`); err != nil {
		return 0, fmt.Errorf("storage: count registrations: %w", err)
	}
	return n, nil
}

// ListAll returns every registration in insertion order.
func (r *RegistrationRepo) ListAll(ctx context.Context) ([]registration.Registration, error) {
	var regs []registration.Registration
	err := r.db.SelectContext(ctx, &regs,
		`SELECT id, telegram_id, firstname, lastname, phone, company, activity_type, created_at
		 FROM registrations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("storage: list registrations: %w", err)
	}
	return regs, nil
}

// Close releases the underlying database handle.
func (r *RegistrationRepo) Close() error {
	return r.db.Close()
}
