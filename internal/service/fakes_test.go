package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"doorman/internal/models"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

// fakeInviteStore mimics the conditional-update semantics of the real
// repository against an in-memory map.
type fakeInviteStore struct {
	invites map[string]*models.Invite
	failing bool
}

func newFakeInviteStore() *fakeInviteStore {
	return &fakeInviteStore{invites: make(map[string]*models.Invite)}
}

func (s *fakeInviteStore) Create(guestName string, maxEntries int, expiration time.Time) (*models.Invite, error) {
	if s.failing {
		return nil, errStoreDown
	}
	invite := &models.Invite{
		Token:      uuid.New().String(),
		GuestName:  guestName,
		MaxEntries: maxEntries,
		Expiration: expiration,
		CreatedAt:  time.Now(),
	}
	s.invites[invite.Token] = invite
	return invite, nil
}

func (s *fakeInviteStore) GetByToken(token string) (*models.Invite, error) {
	if s.failing {
		return nil, errStoreDown
	}
	inv, ok := s.invites[token]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (s *fakeInviteStore) DecrementIfUsable(token string, now time.Time) (bool, error) {
	if s.failing {
		return false, errStoreDown
	}
	inv, ok := s.invites[token]
	if !ok {
		return false, nil
	}
	if inv.MaxEntries > 0 && inv.Expiration.After(now) {
		inv.MaxEntries--
		return true, nil
	}
	return false, nil
}

func (s *fakeInviteStore) ListActive(now time.Time) ([]models.Invite, error) {
	if s.failing {
		return nil, errStoreDown
	}
	var active []models.Invite
	for _, inv := range s.invites {
		if inv.MaxEntries > 0 && inv.Expiration.After(now) {
			active = append(active, *inv)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Token < active[j].Token })
	return active, nil
}

func (s *fakeInviteStore) ListTokens() ([]string, error) {
	if s.failing {
		return nil, errStoreDown
	}
	tokens := make([]string, 0, len(s.invites))
	for token := range s.invites {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens, nil
}

func (s *fakeInviteStore) DeleteTokens(tokens []string) error {
	if s.failing {
		return errStoreDown
	}
	for _, token := range tokens {
		delete(s.invites, token)
	}
	return nil
}

type fakeKnockStore struct {
	knock   *models.SecretKnock
	failing bool
}

func (s *fakeKnockStore) Replace(knock *models.SecretKnock) error {
	if s.failing {
		return errStoreDown
	}
	copied := *knock
	s.knock = &copied
	return nil
}

func (s *fakeKnockStore) Get() (*models.SecretKnock, error) {
	if s.failing {
		return nil, errStoreDown
	}
	if s.knock == nil {
		return nil, nil
	}
	copied := *s.knock
	return &copied, nil
}

type fakeKnockerStore struct {
	knockers []models.TrustedKnocker
	failing  bool
}

func (s *fakeKnockerStore) List() ([]models.TrustedKnocker, error) {
	if s.failing {
		return nil, errStoreDown
	}
	return s.knockers, nil
}

type fakeOverrideStore struct {
	active  bool
	failing bool
	sets    int
}

func (s *fakeOverrideStore) Get() (bool, error) {
	if s.failing {
		return false, errStoreDown
	}
	return s.active, nil
}

func (s *fakeOverrideStore) Set(active bool) error {
	if s.failing {
		return errStoreDown
	}
	s.active = active
	s.sets++
	return nil
}

type fakeUnlocker struct {
	calls int
	err   error
}

func (u *fakeUnlocker) Unlock(ctx context.Context) error {
	u.calls++
	return u.err
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (n *fakeNotifier) Send(ctx context.Context, text string) error {
	n.messages = append(n.messages, text)
	return n.err
}
