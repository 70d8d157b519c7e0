// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"

	"github.com/danielhkuo/rangepoll/auth"
	"github.com/danielhkuo/rangepoll/middleware"
	"github.com/danielhkuo/rangepoll/models"
	"github.com/danielhkuo/rangepoll/polls"
	"github.com/danielhkuo/rangepoll/store"
)

type PollHandler struct {
	svc    *polls.Service
	tokens *auth.TokenService
	voters *store.VoterStore
}

func NewPollHandler(svc *polls.Service, tokens *auth.TokenService, voters *store.VoterStore) *PollHandler {
	return &PollHandler{svc: svc, tokens: tokens, voters: voters}
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	voter, err := basicAuthVoter(r, h.voters)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}

	summaries, err := h.svc.ListPolls(voter.Username)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	voterID, err := identifyVoter(r, pollID, h.tokens, h.voters)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}

	poll, err := h.svc.GetPoll(pollID, voterID)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// SubmitVote handles POST /polls/{id}/votes. The voter identity comes only
// from the verified invitation token; nothing in the body names a voter.
func (h *PollHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	token := bearerToken(r)
	if token == "" {
		middleware.WriteDomainError(w,
			fmt.Errorf("%w: invitation token required", models.ErrUnauthorized))
		return
	}
	tokenPoll, voterID, err := h.tokens.Validate(token)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	if tokenPoll != pollID {
		middleware.WriteDomainError(w,
			fmt.Errorf("%w: token is for another poll", models.ErrUnauthorized))
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.svc.SubmitVote(pollID, models.Ballot{Voter: voterID, Scores: req.Scores})
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

// GetResults handles GET /polls/{id}/results. A pending tally is a success
// response with pending set and no ranking.
func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")

	voterID, err := identifyVoter(r, pollID, h.tokens, h.voters)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}

	result, err := h.svc.GetTally(pollID, voterID)
	if err != nil {
		middleware.WriteDomainError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}
