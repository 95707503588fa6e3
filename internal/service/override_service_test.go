package service

import "testing"

func TestOverrideLoadsInitialState(t *testing.T) {
	svc, err := NewOverrideService(&fakeOverrideStore{active: true})
	if err != nil {
		t.Fatalf("NewOverrideService failed: %v", err)
	}
	if !svc.Active() {
		t.Error("cached state should reflect the persisted value at startup")
	}
}

func TestOverrideInitFailsWhenStoreUnavailable(t *testing.T) {
	if _, err := NewOverrideService(&fakeOverrideStore{failing: true}); err == nil {
		t.Fatal("expected error when the store is unavailable at startup")
	}
}

func TestOverrideSetPersistsThenCaches(t *testing.T) {
	store := &fakeOverrideStore{}
	svc, err := NewOverrideService(store)
	if err != nil {
		t.Fatalf("NewOverrideService failed: %v", err)
	}

	if err := svc.Set(true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !store.active {
		t.Error("Set did not persist the new state")
	}
	if !svc.Active() {
		t.Error("Set did not refresh the cache")
	}

	if err := svc.Set(false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if svc.Active() {
		t.Error("cache still active after Set(false)")
	}
}

func TestOverrideFailedPersistLeavesCacheUnchanged(t *testing.T) {
	store := &fakeOverrideStore{}
	svc, err := NewOverrideService(store)
	if err != nil {
		t.Fatalf("NewOverrideService failed: %v", err)
	}

	store.failing = true
	if err := svc.Set(true); err == nil {
		t.Fatal("expected error from failing store")
	}
	if svc.Active() {
		t.Error("cache updated despite failed persist")
	}
}
