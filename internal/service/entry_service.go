package service

import (
	"context"
	"log"

	"doorman/internal/models"
	"doorman/internal/notify"
)

// Unlocker triggers the physical lock actuator
type Unlocker interface {
	Unlock(ctx context.Context) error
}

// Notifier delivers a message to the operator channel
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// EntryService decides every entry attempt. Each attempt is checked against
// the override switch first, then dispatched to exactly one authenticator.
// A grant commits the authenticator's state change and fires the unlock and
// notification side effects; those are best-effort and can never turn a
// grant back into a denial.
type EntryService struct {
	override *OverrideService
	invites  *InviteService
	knocks   *KnockService
	trusted  *TrustedKnockService
	unlocker Unlocker
	notifier Notifier
	messages *notify.Messages
}

func NewEntryService(
	override *OverrideService,
	invites *InviteService,
	knocks *KnockService,
	trusted *TrustedKnockService,
	unlocker Unlocker,
	notifier Notifier,
	messages *notify.Messages,
) *EntryService {
	return &EntryService{
		override: override,
		invites:  invites,
		knocks:   knocks,
		trusted:  trusted,
		unlocker: unlocker,
		notifier: notifier,
		messages: messages,
	}
}

// EnterWithInvite consumes one entry from the invite and opens the door
func (s *EntryService) EnterWithInvite(ctx context.Context, token string) (*models.Invite, error) {
	if s.override.Active() {
		return nil, ErrLockdown
	}

	invite, err := s.invites.Consume(token)
	if err != nil {
		return nil, err
	}

	s.grant(ctx, s.messages.Entry(invite))
	return invite, nil
}

// EnterWithKnock verifies the shared knock pattern and opens the door
func (s *EntryService) EnterWithKnock(ctx context.Context, pattern string) error {
	if s.override.Active() {
		return ErrLockdown
	}

	if err := s.knocks.Verify(pattern); err != nil {
		return err
	}

	s.grant(ctx, s.messages.SecretKnockEntry())
	return nil
}

// EnterWithChallenge verifies a trusted-knock challenge and opens the door,
// returning the identified user on success.
func (s *EntryService) EnterWithChallenge(ctx context.Context, nonce, tag string) (string, error) {
	if s.override.Active() {
		return "", ErrLockdown
	}

	user, err := s.trusted.Verify(nonce, tag)
	if err != nil {
		if IsDenial(err) {
			s.notify(ctx, s.messages.TrustedKnockFailed())
		}
		return "", err
	}

	s.grant(ctx, s.messages.TrustedEntry(user))
	return user, nil
}

// grant fires the post-success side effects. Failures are logged, never
// propagated: the decision is already made.
func (s *EntryService) grant(ctx context.Context, message string) {
	if err := s.unlocker.Unlock(ctx); err != nil {
		log.Printf("Error unlocking door: %v", err)
	}
	s.notify(ctx, message)
}

func (s *EntryService) notify(ctx context.Context, message string) {
	if err := s.notifier.Send(ctx, message); err != nil {
		log.Printf("Error sending notification: %v", err)
	}
}
