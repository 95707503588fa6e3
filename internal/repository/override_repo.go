package repository

import (
	"database/sql"
	"errors"

	"doorman/internal/database"
)

type OverrideRepository struct {
	db *database.DB
}

func NewOverrideRepository(db *database.DB) *OverrideRepository {
	return &OverrideRepository{db: db}
}

// Get returns the persisted override state. A missing row reads as inactive.
func (r *OverrideRepository) Get() (bool, error) {
	var active bool
	err := r.db.QueryRow(`SELECT active FROM overrides WHERE id = ?`, singletonKey).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return active, nil
}

// Set persists the override state
func (r *OverrideRepository) Set(active bool) error {
	query := r.db.Dialect.UpsertSingleton("overrides", "id", "active")
	_, err := r.db.Exec(query, singletonKey, active)
	return err
}
