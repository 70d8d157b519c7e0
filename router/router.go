// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/rangepoll/auth"
	"github.com/danielhkuo/rangepoll/cliparse"
	"github.com/danielhkuo/rangepoll/handlers"
	"github.com/danielhkuo/rangepoll/middleware"
	"github.com/danielhkuo/rangepoll/polls"
	"github.com/danielhkuo/rangepoll/store"
)

func NewRouter(svc *polls.Service, tokens *auth.TokenService, voters *store.VoterStore, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(svc, tokens, voters)
	invitationHandler := handlers.NewInvitationHandler(tokens, voters, cfg.BaseURL)
	adminHandler := handlers.NewAdminHandler(svc, voters)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll reads and voting
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(pollHandler.SubmitVote))
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(pollHandler.GetResults))

	// Invitations
	mux.HandleFunc("POST /polls/{id}/invitations", middleware.WithLogging(invitationHandler.Issue))
	mux.HandleFunc("GET /invitations/{token}", middleware.WithLogging(invitationHandler.Validate))

	// Record maintenance (admin operations)
	mux.HandleFunc("PUT /admin/voters/{name}", middleware.WithLogging(adminHandler.UpsertVoter))
	mux.HandleFunc("DELETE /admin/voters/{name}", middleware.WithLogging(adminHandler.DeleteVoter))
	mux.HandleFunc("PUT /admin/polls/{id}", middleware.WithLogging(adminHandler.UpsertPoll))
	mux.HandleFunc("DELETE /admin/polls/{id}", middleware.WithLogging(adminHandler.DeletePoll))
	mux.HandleFunc("POST /admin/polls/{id}/participants/{name}", middleware.WithLogging(adminHandler.AddParticipant))
	mux.HandleFunc("DELETE /admin/polls/{id}/participants/{name}", middleware.WithLogging(adminHandler.RemoveParticipant))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rangepoll API v1"))
	})

	return mux
}
