package models

import "time"

// SecretKnock is the single shared numeric entry pattern. At most one live
// knock exists; generating a new one replaces the previous.
type SecretKnock struct {
	Pattern    string
	Expiration time.Time
}

func (k *SecretKnock) IsExpired(now time.Time) bool {
	return !now.Before(k.Expiration)
}

// TrustedKnocker is a provisioned identity holding a shared secret used to
// sign time-bound challenges. The secret doubles as the store key.
type TrustedKnocker struct {
	Secret string
	User   string
}

// Override is the operator-controlled switch that suspends all entry paths.
type Override struct {
	Active bool
}
