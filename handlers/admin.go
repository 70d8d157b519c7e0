// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/rangepoll/middleware"
	"github.com/danielhkuo/rangepoll/models"
	"github.com/danielhkuo/rangepoll/polls"
	"github.com/danielhkuo/rangepoll/store"
)

// AdminHandler exposes the record-maintenance operations. Basic auth proves
// who the caller is; the polls service decides whether they may act.
type AdminHandler struct {
	svc    *polls.Service
	voters *store.VoterStore
}

func NewAdminHandler(svc *polls.Service, voters *store.VoterStore) *AdminHandler {
	return &AdminHandler{svc: svc, voters: voters}
}

func (h *AdminHandler) actor(r *http.Request) (string, error) {
	voter, err := basicAuthVoter(r, h.voters)
	if err != nil {
		return "", err
	}
	return voter.Username, nil
}

// UpsertVoter handles PUT /admin/voters/{name}
func (h *AdminHandler) UpsertVoter(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}

	name := r.PathValue("name")
	var req models.UpsertVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter := &models.Voter{
		ID:           name,
		Username:     name,
		Email:        req.Email,
		Fullname:     req.Fullname,
		Presentation: req.Presentation,
		Password:     req.Password,
		Admin:        req.Admin,
	}
	if err := h.svc.UpsertVoter(actor, voter); err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, voter)
}

// DeleteVoter handles DELETE /admin/voters/{name}
func (h *AdminHandler) DeleteVoter(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	if err := h.svc.DeleteVoter(actor, r.PathValue("name")); err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpsertPoll handles PUT /admin/polls/{id}
func (h *AdminHandler) UpsertPoll(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}

	var poll models.Poll
	if err := middleware.ParseJSONBody(r, &poll); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	poll.ID = r.PathValue("id")

	if err := h.svc.UpsertPoll(actor, &poll); err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /admin/polls/{id}
func (h *AdminHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	if err := h.svc.DeletePoll(actor, r.PathValue("id")); err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddParticipant handles POST /admin/polls/{id}/participants/{name}
func (h *AdminHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	if err := h.svc.AddParticipant(actor, r.PathValue("id"), r.PathValue("name")); err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveParticipant handles DELETE /admin/polls/{id}/participants/{name}
func (h *AdminHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actor(r)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	if err := h.svc.RemoveParticipant(actor, r.PathValue("id"), r.PathValue("name")); err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
