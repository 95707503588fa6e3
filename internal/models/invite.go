package models

import "time"

// Invite is a single grant of time- and quota-bounded entry.
type Invite struct {
	Token      string
	GuestName  string
	MaxEntries int
	Expiration time.Time
	CreatedAt  time.Time
}

func (i *Invite) IsExpired(now time.Time) bool {
	return !now.Before(i.Expiration)
}

func (i *Invite) IsExhausted() bool {
	return i.MaxEntries <= 0
}

// IsActive reports whether the invite still grants entry
func (i *Invite) IsActive(now time.Time) bool {
	return !i.IsExpired(now) && !i.IsExhausted()
}

// ShortToken returns the leading characters of the token for display.
// Enough to identify an invite in a listing without disclosing the
// full credential.
func (i *Invite) ShortToken() string {
	if len(i.Token) < 5 {
		return i.Token
	}
	return i.Token[:5]
}
