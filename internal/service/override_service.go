package service

import (
	"fmt"
	"sync/atomic"
)

// OverrideStore persists the override switch
type OverrideStore interface {
	Get() (bool, error)
	Set(active bool) error
}

// OverrideService is the operator kill-switch. The persisted value is
// mirrored in an in-process cache so every entry attempt can check it
// without a store round trip. Readers may observe the old value while a Set
// is in flight; the switch is operator-driven and low-frequency, so eventual
// consistency is fine here.
type OverrideService struct {
	store  OverrideStore
	active atomic.Bool
}

// NewOverrideService loads the persisted switch state into the cache
func NewOverrideService(store OverrideStore) (*OverrideService, error) {
	s := &OverrideService{store: store}

	active, err := store.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load override state: %w", err)
	}
	s.active.Store(active)
	return s, nil
}

// Active returns the cached switch state
func (s *OverrideService) Active() bool {
	return s.active.Load()
}

// Set persists the new state, then refreshes the cache. The cache is only
// updated after the write succeeds so a failed persist never leaves the
// cache ahead of the store.
func (s *OverrideService) Set(active bool) error {
	if err := s.store.Set(active); err != nil {
		return fmt.Errorf("failed to persist override state: %w", err)
	}
	s.active.Store(active)
	return nil
}
