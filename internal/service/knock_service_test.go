package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"doorman/internal/models"
)

func TestGenerateKnockPattern(t *testing.T) {
	store := &fakeKnockStore{}
	svc := NewKnockService(store, 30*time.Hour)

	knock, err := svc.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(knock.Pattern) != 3 {
		t.Errorf("pattern length = %d, want 3", len(knock.Pattern))
	}
	for _, c := range knock.Pattern {
		if !strings.ContainsRune("12345", c) {
			t.Errorf("pattern %q contains symbol %q outside 1..5", knock.Pattern, c)
		}
	}

	before := time.Now().Add(30 * time.Hour)
	if knock.Expiration.After(before.Add(time.Minute)) || knock.Expiration.Before(before.Add(-time.Minute)) {
		t.Errorf("expiration %v not about 30h out", knock.Expiration)
	}
}

func TestGenerateOverwritesPreviousKnock(t *testing.T) {
	store := &fakeKnockStore{}
	svc := NewKnockService(store, 30*time.Hour)

	// Pin the first pattern to something the generator cannot produce so the
	// two patterns are guaranteed to differ.
	store.knock = &models.SecretKnock{Pattern: "999", Expiration: time.Now().Add(time.Hour)}

	second, err := svc.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if err := svc.Verify("999"); !errors.Is(err, ErrKnockDenied) {
		t.Errorf("old pattern still verifies after regeneration: %v", err)
	}
	if err := svc.Verify(second.Pattern); err != nil {
		t.Errorf("new pattern does not verify: %v", err)
	}
}

func TestVerifyKnock(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		stored   *models.SecretKnock
		supplied string
		wantErr  error
	}{
		{
			name:     "match",
			stored:   &models.SecretKnock{Pattern: "314", Expiration: now.Add(time.Hour)},
			supplied: "314",
			wantErr:  nil,
		},
		{
			name:     "mismatch",
			stored:   &models.SecretKnock{Pattern: "314", Expiration: now.Add(time.Hour)},
			supplied: "315",
			wantErr:  ErrKnockDenied,
		},
		{
			name:     "no knock generated",
			stored:   nil,
			supplied: "314",
			wantErr:  ErrKnockDenied,
		},
		{
			name:     "expired knock",
			stored:   &models.SecretKnock{Pattern: "314", Expiration: now.Add(-time.Minute)},
			supplied: "314",
			wantErr:  ErrKnockDenied,
		},
		{
			name:     "empty supplied pattern",
			stored:   &models.SecretKnock{Pattern: "314", Expiration: now.Add(time.Hour)},
			supplied: "",
			wantErr:  ErrKnockDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewKnockService(&fakeKnockStore{knock: tt.stored}, 30*time.Hour)
			err := svc.Verify(tt.supplied)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify(%q) error = %v, want %v", tt.supplied, err, tt.wantErr)
			}
		})
	}
}

func TestVerifyKnockIsReusable(t *testing.T) {
	store := &fakeKnockStore{knock: &models.SecretKnock{Pattern: "222", Expiration: time.Now().Add(time.Hour)}}
	svc := NewKnockService(store, 30*time.Hour)

	for i := 0; i < 3; i++ {
		if err := svc.Verify("222"); err != nil {
			t.Fatalf("Verify attempt %d failed: %v", i+1, err)
		}
	}
}
