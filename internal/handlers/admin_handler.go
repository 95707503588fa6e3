package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"doorman/internal/notify"
	"doorman/internal/security"
	"doorman/internal/service"
)

// AdminHandler serves the privileged JSON API. All endpoints except login
// sit behind the bearer-token middleware.
type AdminHandler struct {
	invites      *service.InviteService
	knocks       *service.KnockService
	override     *service.OverrideService
	messages     *notify.Messages
	issuer       *security.TokenIssuer
	passwordHash string
}

func NewAdminHandler(
	invites *service.InviteService,
	knocks *service.KnockService,
	override *service.OverrideService,
	messages *notify.Messages,
	issuer *security.TokenIssuer,
	passwordHash string,
) *AdminHandler {
	return &AdminHandler{
		invites:      invites,
		knocks:       knocks,
		override:     override,
		messages:     messages,
		issuer:       issuer,
		passwordHash: passwordHash,
	}
}

// Login exchanges the admin password for a bearer token
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.passwordHash == "" {
		respondWithError(w, http.StatusServiceUnavailable, "Admin API not configured", "", nil)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if !security.CheckPassword(h.passwordHash, req.Password) {
		respondWithError(w, http.StatusUnauthorized, "Unauthorized", "", nil)
		return
	}

	token, err := h.issuer.Issue()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "failed to issue admin token", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateInvite creates a new invite
func (h *AdminHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GuestName  string     `json:"guestName"`
		MaxEntries int        `json:"maxEntries"`
		Expiration *time.Time `json:"expiration,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	expiration := time.Time{}
	if req.Expiration != nil {
		expiration = *req.Expiration
	}

	invite, err := h.invites.Create(req.GuestName, req.MaxEntries, expiration)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMaxEntries) {
			respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "failed to create invite", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"token":      invite.Token,
		"url":        h.messages.InviteURL(invite.Token),
		"guestName":  invite.GuestName,
		"maxEntries": invite.MaxEntries,
		"expiration": invite.Expiration,
	})
}

// inviteSummary is one row of the active-invite listing. Only a token
// prefix is disclosed; the listing identifies invites without handing out
// usable credentials.
type inviteSummary struct {
	GuestName  string    `json:"guestName"`
	Token      string    `json:"token"`
	Remaining  int       `json:"remaining"`
	Expiration time.Time `json:"expiration"`
}

// ListInvites returns the invites that still grant entry
func (h *AdminHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	invites, err := h.invites.ListActive()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "failed to list invites", err)
		return
	}

	summaries := make([]inviteSummary, 0, len(invites))
	for _, inv := range invites {
		summaries = append(summaries, inviteSummary{
			GuestName:  inv.GuestName,
			Token:      inv.ShortToken(),
			Remaining:  inv.MaxEntries,
			Expiration: inv.Expiration,
		})
	}

	respondWithJSON(w, http.StatusOK, summaries)
}

// DeleteInvites removes every invite whose token matches any given pattern
func (h *AdminHandler) DeleteInvites(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Patterns []string `json:"patterns"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	deleted, err := h.invites.DeleteMatching(req.Patterns)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPattern) {
			respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "failed to delete invites", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string][]string{"deleted": deleted})
}

// GenerateKnock replaces the secret knock and discloses the new pattern
func (h *AdminHandler) GenerateKnock(w http.ResponseWriter, r *http.Request) {
	knock, err := h.knocks.Generate()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "failed to generate secret knock", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"pattern":    knock.Pattern,
		"expiration": knock.Expiration,
	})
}

// SetOverride toggles the barn-door switch
func (h *AdminHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	if err := h.override.Set(req.Active); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "failed to set override", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}
