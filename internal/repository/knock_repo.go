package repository

import (
	"database/sql"
	"errors"

	"doorman/internal/database"
	"doorman/internal/models"
)

// singletonKey is the fixed row key for single-row tables
const singletonKey = 1

type KnockRepository struct {
	db *database.DB
}

func NewKnockRepository(db *database.DB) *KnockRepository {
	return &KnockRepository{db: db}
}

// Replace stores the knock, overwriting any previous one
func (r *KnockRepository) Replace(knock *models.SecretKnock) error {
	query := r.db.Dialect.UpsertSingleton("secret_knocks", "id", "pattern", "expiration")
	_, err := r.db.Exec(query, singletonKey, knock.Pattern, knock.Expiration)
	return err
}

// Get returns the current knock, or (nil, nil) when none has been generated
func (r *KnockRepository) Get() (*models.SecretKnock, error) {
	var knock models.SecretKnock
	err := r.db.QueryRow(`SELECT pattern, expiration FROM secret_knocks WHERE id = ?`, singletonKey).
		Scan(&knock.Pattern, &knock.Expiration)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &knock, nil
}
