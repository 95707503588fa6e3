package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"doorman/internal/models"
)

const (
	knockLength    = 3
	knockSymbolMax = 5 // symbols are drawn from 1..5
)

// KnockStore persists the single active secret knock
type KnockStore interface {
	Replace(knock *models.SecretKnock) error
	Get() (*models.SecretKnock, error)
}

// KnockService owns the shared secret knock pattern and its verification
type KnockService struct {
	knocks   KnockStore
	validity time.Duration
}

func NewKnockService(knocks KnockStore, validity time.Duration) *KnockService {
	return &KnockService{
		knocks:   knocks,
		validity: validity,
	}
}

// Generate draws a fresh pattern and unconditionally replaces the previous
// knock. The pattern is disclosed only to the privileged caller.
func (s *KnockService) Generate() (*models.SecretKnock, error) {
	pattern := ""
	for i := 0; i < knockLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(knockSymbolMax))
		if err != nil {
			return nil, fmt.Errorf("failed to draw knock symbol: %w", err)
		}
		pattern += fmt.Sprintf("%d", n.Int64()+1)
	}

	knock := &models.SecretKnock{
		Pattern:    pattern,
		Expiration: time.Now().Add(s.validity),
	}
	if err := s.knocks.Replace(knock); err != nil {
		return nil, fmt.Errorf("failed to store secret knock: %w", err)
	}
	return knock, nil
}

// Verify checks a supplied pattern against the stored knock. The knock is
// reusable until it expires or is replaced; verification never consumes it.
func (s *KnockService) Verify(pattern string) error {
	knock, err := s.knocks.Get()
	if err != nil {
		return fmt.Errorf("failed to load secret knock: %w", err)
	}

	if knock == nil || knock.Pattern != pattern || knock.IsExpired(time.Now()) {
		return ErrKnockDenied
	}
	return nil
}
