// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/rangepoll/auth"
	"github.com/danielhkuo/rangepoll/middleware"
	"github.com/danielhkuo/rangepoll/models"
	"github.com/danielhkuo/rangepoll/store"
)

type InvitationHandler struct {
	tokens  *auth.TokenService
	voters  *store.VoterStore
	baseURL string
}

func NewInvitationHandler(tokens *auth.TokenService, voters *store.VoterStore, baseURL string) *InvitationHandler {
	return &InvitationHandler{tokens: tokens, voters: voters, baseURL: strings.TrimRight(baseURL, "/")}
}

type invitationOut struct {
	Voter string `json:"voter"`
	Token string `json:"token"`
	Link  string `json:"link,omitempty"`
}

type issueResponse struct {
	Poll        string          `json:"poll"`
	Invitations []invitationOut `json:"invitations"`
}

// Issue handles POST /polls/{id}/invitations. Admin only; mints one token
// per allowed participant of the poll, ready to send out.
func (h *InvitationHandler) Issue(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	actor, err := basicAuthVoter(r, h.voters)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	if !actor.Admin {
		middleware.WriteDomainError(w,
			fmt.Errorf("%w: %s is not an admin", models.ErrPermissionDenied, actor.Username))
		return
	}

	invitations, err := h.tokens.Issue(pollID)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}

	out := issueResponse{Poll: pollID, Invitations: make([]invitationOut, 0, len(invitations))}
	for _, inv := range invitations {
		entry := invitationOut{Voter: inv.Voter, Token: inv.Token}
		if h.baseURL != "" {
			entry.Link = h.baseURL + "/invitations/" + inv.Token
		}
		out.Invitations = append(out.Invitations, entry)
	}

	slog.Info("invitations issued", "poll", pollID, "count", len(out.Invitations), "actor", actor.Username)
	middleware.JSONResponse(w, http.StatusCreated, out)
}

// Validate handles GET /invitations/{token}
func (h *InvitationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	pollID, voterID, err := h.tokens.Validate(r.PathValue("token"))
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ValidateTokenResponse{
		Poll:  pollID,
		Voter: voterID,
	})
}
