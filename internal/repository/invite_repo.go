package repository

import (
	"database/sql"
	"errors"
	"time"

	"doorman/internal/database"
	"doorman/internal/models"

	"github.com/google/uuid"
)

type InviteRepository struct {
	db *database.DB
}

func NewInviteRepository(db *database.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

// Create persists a new invite under a freshly generated token
func (r *InviteRepository) Create(guestName string, maxEntries int, expiration time.Time) (*models.Invite, error) {
	invite := &models.Invite{
		Token:      uuid.New().String(),
		GuestName:  guestName,
		MaxEntries: maxEntries,
		Expiration: expiration,
		CreatedAt:  time.Now(),
	}

	query := `INSERT INTO invites (token, guest_name, max_entries, expiration, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.Exec(query, invite.Token, invite.GuestName, invite.MaxEntries, invite.Expiration, invite.CreatedAt); err != nil {
		return nil, err
	}

	return invite, nil
}

// GetByToken retrieves an invite by token. Returns (nil, nil) when no
// invite exists under the token.
func (r *InviteRepository) GetByToken(token string) (*models.Invite, error) {
	query := `SELECT token, guest_name, max_entries, expiration, created_at FROM invites WHERE token = ?`

	var inv models.Invite
	err := r.db.QueryRow(query, token).Scan(&inv.Token, &inv.GuestName, &inv.MaxEntries, &inv.Expiration, &inv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &inv, nil
}

// DecrementIfUsable consumes one entry from the invite if, and only if, it
// still has entries remaining and has not expired. The guard and the
// decrement are a single statement so concurrent consumers of the same token
// cannot both pass the check; the quota never goes negative.
func (r *InviteRepository) DecrementIfUsable(token string, now time.Time) (bool, error) {
	query := `UPDATE invites SET max_entries = max_entries - 1 WHERE token = ? AND max_entries > 0 AND expiration > ?`
	result, err := r.db.Exec(query, token, now)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ListActive returns invites with entries remaining and a future expiration.
// The quota filter is pushed down to the store; the expiration filter runs
// in-process, keeping the query to a single inequality.
func (r *InviteRepository) ListActive(now time.Time) ([]models.Invite, error) {
	query := `SELECT token, guest_name, max_entries, expiration, created_at FROM invites WHERE max_entries > 0 ORDER BY created_at`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.Invite
	for rows.Next() {
		var inv models.Invite
		if err := rows.Scan(&inv.Token, &inv.GuestName, &inv.MaxEntries, &inv.Expiration, &inv.CreatedAt); err != nil {
			return nil, err
		}
		if inv.Expiration.After(now) {
			invites = append(invites, inv)
		}
	}

	return invites, rows.Err()
}

// ListTokens returns every stored invite token
func (r *InviteRepository) ListTokens() ([]string, error) {
	rows, err := r.db.Query(`SELECT token FROM invites`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	return tokens, rows.Err()
}

// DeleteTokens removes the invites stored under the given tokens
func (r *InviteRepository) DeleteTokens(tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	for _, token := range tokens {
		if _, err := r.db.Exec(`DELETE FROM invites WHERE token = ?`, token); err != nil {
			return err
		}
	}
	return nil
}
