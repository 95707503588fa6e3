package repository

import (
	"database/sql"

	"doorman/internal/database"
	"doorman/internal/models"
)

type TrustedKnockerRepository struct {
	db *database.DB
}

func NewTrustedKnockerRepository(db *database.DB) *TrustedKnockerRepository {
	return &TrustedKnockerRepository{db: db}
}

// List returns every provisioned trusted knocker. Knockers without a user
// label are reported as "unknown".
func (r *TrustedKnockerRepository) List() ([]models.TrustedKnocker, error) {
	rows, err := r.db.Query(`SELECT secret, user_name FROM trusted_knockers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var knockers []models.TrustedKnocker
	for rows.Next() {
		var knocker models.TrustedKnocker
		var user sql.NullString
		if err := rows.Scan(&knocker.Secret, &user); err != nil {
			return nil, err
		}
		if user.Valid && user.String != "" {
			knocker.User = user.String
		} else {
			knocker.User = "unknown"
		}
		knockers = append(knockers, knocker)
	}

	return knockers, rows.Err()
}
