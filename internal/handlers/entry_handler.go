package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"

	"doorman/internal/notify"
	"doorman/internal/service"

	"github.com/google/uuid"
)

// EntryHandler serves the guest-facing pages and entry endpoints
type EntryHandler struct {
	entries   *service.EntryService
	invites   *service.InviteService
	notifier  service.Notifier
	messages  *notify.Messages
	templates *template.Template
}

func NewEntryHandler(
	entries *service.EntryService,
	invites *service.InviteService,
	notifier service.Notifier,
	messages *notify.Messages,
	templates *template.Template,
) *EntryHandler {
	return &EntryHandler{
		entries:   entries,
		invites:   invites,
		notifier:  notifier,
		messages:  messages,
		templates: templates,
	}
}

// ShowWelcome renders the unlock page for an invite link
func (h *EntryHandler) ShowWelcome(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("inviteToken")
	if uuid.Validate(token) != nil {
		fmt.Fprint(w, "no thank you")
		return
	}

	data := struct {
		ActionURL string
	}{
		ActionURL: h.messages.InviteURL(token),
	}
	if err := h.templates.ExecuteTemplate(w, "welcome.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "failed to render welcome page", err)
	}
}

// Enter consumes one entry from the invite and unlocks the door
func (h *EntryHandler) Enter(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("inviteToken")
	if uuid.Validate(token) != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	_, err := h.entries.EnterWithInvite(r.Context(), token)
	if err != nil {
		h.denyEntry(w, err)
		return
	}

	fmt.Fprint(w, "Welcome!")
}

// ShowKnock renders the doorbell page
func (h *EntryHandler) ShowKnock(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.ExecuteTemplate(w, "knock.tmpl", nil); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "failed to render knock page", err)
	}
}

// Knock creates a single-entry invite for an anonymous visitor and tells
// the operator someone is at the door.
func (h *EntryHandler) Knock(w http.ResponseWriter, r *http.Request) {
	invite, err := h.invites.Create("Anonymous Knocker", 1, time.Time{})
	if err != nil {
		log.Printf("Unable to create invite for knock: %v", err)
		if sendErr := h.notifier.Send(r.Context(), "Unable to create invite for knock."); sendErr != nil {
			log.Printf("Error sending notification: %v", sendErr)
		}
		fmt.Fprint(w, "Unable to knock")
		return
	}

	if err := h.notifier.Send(r.Context(), h.messages.KnockAtDoor(invite.Token)); err != nil {
		log.Printf("Error sending knock notification: %v", err)
	}
	fmt.Fprint(w, "<p>You've knocked. Please wait to be let in.</p>")
}

// SecretKnock verifies the shared knock pattern from the URL
func (h *EntryHandler) SecretKnock(w http.ResponseWriter, r *http.Request) {
	pattern := r.PathValue("pattern")

	if err := h.entries.EnterWithKnock(r.Context(), pattern); err != nil {
		if errors.Is(err, service.ErrLockdown) {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		if !service.IsDenial(err) {
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "secret knock check failed", err)
			return
		}
		w.WriteHeader(http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// TrustedKnock verifies an HMAC challenge: the nonce is the request body,
// the tag rides in the Authorization header.
func (h *EntryHandler) TrustedKnock(w http.ResponseWriter, r *http.Request) {
	if err := h.notifier.Send(r.Context(), "trusted knock initiated..."); err != nil {
		log.Printf("Error sending notification: %v", err)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1024))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "failed to read nonce body", err)
		return
	}

	user, err := h.entries.EnterWithChallenge(r.Context(), string(body), r.Header.Get("Authorization"))
	if err != nil {
		h.denyEntry(w, err)
		return
	}

	log.Printf("Trusted knocker %q granted entry", user)
	w.WriteHeader(http.StatusOK)
}

// denyEntry maps an entry failure onto its response code. Credential
// failures are a uniform 401 so the response does not leak which check
// failed; a store failure is a 500, distinguishable for audit purposes.
func (h *EntryHandler) denyEntry(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLockdown):
		w.WriteHeader(http.StatusTeapot)
	case service.IsDenial(err):
		w.WriteHeader(http.StatusUnauthorized)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "entry check failed", err)
	}
}

// Health is the liveness endpoint
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Robots tells crawlers to stay away
func Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
}
