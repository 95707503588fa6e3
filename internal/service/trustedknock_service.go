package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"doorman/internal/models"
)

// TrustedKnockerStore lists the provisioned trusted knockers
type TrustedKnockerStore interface {
	List() ([]models.TrustedKnocker, error)
}

// TrustedKnockService verifies HMAC-signed, timestamp-bound challenges
// against the provisioned knocker secrets. Verification is pure: nothing is
// consumed or recorded, so a captured nonce/tag pair stays valid for the
// rest of its timestamp window. A nonce ledger would close that replay
// window but would also break legitimately retried requests, so the window
// is accepted as-is.
type TrustedKnockService struct {
	knockers TrustedKnockerStore
	maxSkew  time.Duration
}

func NewTrustedKnockService(knockers TrustedKnockerStore, maxSkew time.Duration) *TrustedKnockService {
	return &TrustedKnockService{
		knockers: knockers,
		maxSkew:  maxSkew,
	}
}

// Verify checks the nonce and challenge tag. The nonce must be two
// underscore-separated fields whose first field is a unix timestamp within
// the allowed skew of the current time. On success it returns the matching
// knocker's user label. Every rejection reason maps to the same error so
// callers cannot tell which check failed.
func (s *TrustedKnockService) Verify(nonce, tag string) (string, error) {
	if nonce == "" {
		return "", fmt.Errorf("%w: empty nonce", ErrChallengeDenied)
	}

	fields := strings.Split(nonce, "_")
	if len(fields) != 2 {
		return "", fmt.Errorf("%w: malformed nonce", ErrChallengeDenied)
	}

	timestamp, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: malformed nonce timestamp", ErrChallengeDenied)
	}

	if tag == "" {
		return "", fmt.Errorf("%w: missing challenge tag", ErrChallengeDenied)
	}

	skew := time.Since(time.Unix(timestamp, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > s.maxSkew {
		return "", fmt.Errorf("%w: stale nonce", ErrChallengeDenied)
	}

	knockers, err := s.knockers.List()
	if err != nil {
		return "", fmt.Errorf("failed to list trusted knockers: %w", err)
	}

	for _, knocker := range knockers {
		mac := hmac.New(sha256.New, []byte(knocker.Secret))
		mac.Write([]byte(nonce))
		computed := hex.EncodeToString(mac.Sum(nil))
		if subtle.ConstantTimeCompare([]byte(computed), []byte(tag)) == 1 {
			return knocker.User, nil
		}
	}

	return "", fmt.Errorf("%w: no matching knocker", ErrChallengeDenied)
}
