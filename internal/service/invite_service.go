package service

import (
	"fmt"
	"time"

	"doorman/internal/models"
	"doorman/internal/validation"
)

// InviteStore is the persistence surface the invite registry needs
type InviteStore interface {
	Create(guestName string, maxEntries int, expiration time.Time) (*models.Invite, error)
	GetByToken(token string) (*models.Invite, error)
	DecrementIfUsable(token string, now time.Time) (bool, error)
	ListActive(now time.Time) ([]models.Invite, error)
	ListTokens() ([]string, error)
	DeleteTokens(tokens []string) error
}

// InviteService owns the invite lifecycle: creation, lookup, quota
// consumption and bulk deletion.
type InviteService struct {
	invites  InviteStore
	validity time.Duration
}

// NewInviteService creates a new invite service. validity is the default
// lifetime of an invite when the caller does not supply an expiration.
func NewInviteService(invites InviteStore, validity time.Duration) *InviteService {
	return &InviteService{
		invites:  invites,
		validity: validity,
	}
}

// Create validates and persists a new invite. A zero expiration means
// "now plus the default validity window".
func (s *InviteService) Create(guestName string, maxEntries int, expiration time.Time) (*models.Invite, error) {
	if maxEntries < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxEntries, maxEntries)
	}
	if expiration.IsZero() {
		expiration = time.Now().Add(s.validity)
	}

	invite, err := s.invites.Create(guestName, maxEntries, expiration)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return invite, nil
}

// Get looks up an invite by token
func (s *InviteService) Get(token string) (*models.Invite, error) {
	invite, err := s.invites.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite: %w", err)
	}
	if invite == nil {
		return nil, ErrInviteNotFound
	}
	return invite, nil
}

// Consume spends one entry from the invite. The quota check and decrement
// run as one conditional store update, so the quota is monotonically
// non-increasing even under concurrent consumption of the same token. On
// success the returned invite reflects the decremented quota.
func (s *InviteService) Consume(token string) (*models.Invite, error) {
	now := time.Now()

	ok, err := s.invites.DecrementIfUsable(token, now)
	if err != nil {
		return nil, fmt.Errorf("failed to consume invite: %w", err)
	}

	invite, err := s.invites.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invite: %w", err)
	}

	if ok {
		return invite, nil
	}

	// The conditional update did not fire; classify why
	if invite == nil {
		return nil, ErrInviteNotFound
	}
	if invite.IsExpired(now) {
		return nil, ErrInviteExpired
	}
	return nil, ErrInviteExhausted
}

// ListActive returns invites that still grant entry: entries remaining and
// not yet expired.
func (s *InviteService) ListActive() ([]models.Invite, error) {
	invites, err := s.invites.ListActive(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// DeleteMatching removes every invite whose token matches any of the given
// regular expressions and returns the deleted tokens. All patterns are
// validated before anything is deleted; no matches is an empty result, not
// an error.
func (s *InviteService) DeleteMatching(rawPatterns []string) ([]string, error) {
	patterns, err := validation.ParsePatterns(rawPatterns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	tokens, err := s.invites.ListTokens()
	if err != nil {
		return nil, fmt.Errorf("failed to list invite tokens: %w", err)
	}

	matched := []string{}
	for _, token := range tokens {
		for _, p := range patterns {
			if p.Matches(token) {
				matched = append(matched, token)
				break
			}
		}
	}

	if err := s.invites.DeleteTokens(matched); err != nil {
		return nil, fmt.Errorf("failed to delete invites: %w", err)
	}
	return matched, nil
}
