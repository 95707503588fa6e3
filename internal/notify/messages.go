package notify

import (
	"fmt"
	"log"
	"strings"
	"time"

	"doorman/internal/models"
)

// Messages builds the operator-facing message texts. Dates are rendered in
// the configured display timezone.
type Messages struct {
	baseURL  string
	location *time.Location
}

// NewMessages creates a message builder. An unknown timezone falls back
// to UTC.
func NewMessages(baseURL, timezone string) *Messages {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, falling back to UTC", timezone)
		loc = time.UTC
	}
	return &Messages{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		location: loc,
	}
}

// InviteURL returns the public welcome link for a token
func (m *Messages) InviteURL(token string) string {
	return fmt.Sprintf("%s/welcome/%s", m.baseURL, token)
}

// FormatDate renders a timestamp in the display timezone
func (m *Messages) FormatDate(t time.Time) string {
	return t.In(m.location).Format("Mon, Jan 2 2006, 3:04:05 PM MST")
}

// Entry announces a guest entering with an invite
func (m *Messages) Entry(invite *models.Invite) string {
	return fmt.Sprintf("%s has entered!", invite.GuestName)
}

// KnockAtDoor announces an anonymous doorbell knock with a link the
// operator can click to let the visitor in.
func (m *Messages) KnockAtDoor(token string) string {
	return fmt.Sprintf("Someone's at the door! Click on %s to let them in.", m.InviteURL(token))
}

// InviteDetails describes a freshly created invite
func (m *Messages) InviteDetails(invite *models.Invite) string {
	return fmt.Sprintf("Here's the invite link for %s:\n%s\nThey are permitted a maximum of %d entries.\nThe link expires %s.",
		invite.GuestName, m.InviteURL(invite.Token), invite.MaxEntries, m.FormatDate(invite.Expiration))
}

// ActiveInvites lists the invites that still grant entry
func (m *Messages) ActiveInvites(invites []models.Invite) string {
	if len(invites) == 0 {
		return "No active invites. Get more friends!"
	}

	var b strings.Builder
	b.WriteString("The active invites are:\n")
	for _, inv := range invites {
		fmt.Fprintf(&b, "%s\n--------------------\nGUID: %s\nRemaining Entries: %d\nExpiration: %s\n\n",
			inv.GuestName, inv.ShortToken(), inv.MaxEntries, m.FormatDate(inv.Expiration))
	}
	return b.String()
}

// SecretKnockEntry announces an entry through the shared knock
func (m *Messages) SecretKnockEntry() string {
	return "Someone has entered using the secret knock!"
}

// TrustedEntry announces an entry by an identified trusted knocker
func (m *Messages) TrustedEntry(user string) string {
	return fmt.Sprintf("Trusted Knocker '%s' has entered.", user)
}

// TrustedKnockFailed announces a failed trusted-knock attempt
func (m *Messages) TrustedKnockFailed() string {
	return "trusted knock attempt has failed."
}
