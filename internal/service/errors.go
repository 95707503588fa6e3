package service

import "errors"

var (
	// Validation failures, rejected before anything is persisted
	ErrInvalidMaxEntries = errors.New("max entries must be a whole number of at least 1")
	ErrInvalidPattern    = errors.New("invalid delete pattern")

	// Invite consumption outcomes
	ErrInviteNotFound  = errors.New("invite not found")
	ErrInviteExpired   = errors.New("invite expired")
	ErrInviteExhausted = errors.New("invite has no entries remaining")

	// Knock outcomes
	ErrKnockDenied     = errors.New("secret knock denied")
	ErrChallengeDenied = errors.New("trusted knock denied")

	// ErrLockdown is returned when the override switch is active. Distinct
	// from the denial errors so operators can tell "credentials wrong" from
	// "system locked down".
	ErrLockdown = errors.New("entry suspended: lockdown active")
)

// IsDenial reports whether err is a credential failure rather than an
// infrastructure failure. Store errors deliberately do not satisfy this;
// a store outage must not be audited as "access denied".
func IsDenial(err error) bool {
	return errors.Is(err, ErrInviteNotFound) ||
		errors.Is(err, ErrInviteExpired) ||
		errors.Is(err, ErrInviteExhausted) ||
		errors.Is(err, ErrKnockDenied) ||
		errors.Is(err, ErrChallengeDenied)
}
