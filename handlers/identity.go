// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/danielhkuo/rangepoll/auth"
	"github.com/danielhkuo/rangepoll/models"
	"github.com/danielhkuo/rangepoll/store"
)

// bearerToken extracts the invitation token from the Authorization header,
// or "" when the request carries none.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}

// basicAuthVoter resolves the request's basic-auth credentials against the
// voter records.
func basicAuthVoter(r *http.Request, voters *store.VoterStore) (*models.Voter, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, fmt.Errorf("%w: credentials required", models.ErrUnauthorized)
	}
	return auth.CheckCredentials(voters, username, password)
}

// identifyVoter resolves the acting voter for a poll-scoped read: either an
// invitation token for that exact poll, or basic auth. A token scoped to a
// different poll does not identify the caller here.
func identifyVoter(r *http.Request, pollID string, tokens *auth.TokenService, voters *store.VoterStore) (string, error) {
	if token := bearerToken(r); token != "" {
		tokenPoll, voterID, err := tokens.Validate(token)
		if err != nil {
			return "", err
		}
		if tokenPoll != pollID {
			return "", fmt.Errorf("%w: token is for another poll", models.ErrUnauthorized)
		}
		return voterID, nil
	}

	voter, err := basicAuthVoter(r, voters)
	if err != nil {
		return "", err
	}
	return voter.Username, nil
}
