// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/rangepoll/auth"
	"github.com/danielhkuo/rangepoll/cliparse"
	"github.com/danielhkuo/rangepoll/models"
	"github.com/danielhkuo/rangepoll/polls"
	"github.com/danielhkuo/rangepoll/router"
	"github.com/danielhkuo/rangepoll/store"
)

// TestSecret signs invitation tokens in tests
const TestSecret = "test-secret"

// Env is a fully wired server over temp directories and a fake clock.
type Env struct {
	Polls   *store.PollStore
	Voters  *store.VoterStore
	Service *polls.Service
	Tokens  *auth.TokenService
	Clock   *clockwork.FakeClock
	Mux     *http.ServeMux
}

// NewEnv builds the whole stack the way main does, backed by t.TempDir()
// record directories and a fake clock frozen at the given instant.
func NewEnv(t *testing.T, now time.Time) *Env {
	t.Helper()

	pollStore := store.NewPollStore(t.TempDir(), models.AlgorithmMax)
	voterStore := store.NewVoterStore(t.TempDir())
	clock := clockwork.NewFakeClockAt(now)

	svc := polls.NewService(pollStore, voterStore, clock)
	tokens := auth.NewTokenService([]byte(TestSecret), pollStore, clock)

	cfg := cliparse.Config{Port: 8000, DefaultAlgorithm: models.AlgorithmMax}
	mux := router.NewRouter(svc, tokens, voterStore, cfg)

	return &Env{
		Polls:   pollStore,
		Voters:  voterStore,
		Service: svc,
		Tokens:  tokens,
		Clock:   clock,
		Mux:     mux,
	}
}

// SeedVoter writes a voter record
func (e *Env) SeedVoter(t *testing.T, username, password string, admin bool) {
	t.Helper()
	err := e.Voters.Save(&models.Voter{
		ID:           username,
		Username:     username,
		Presentation: username,
		Password:     password,
		Admin:        admin,
	})
	if err != nil {
		t.Fatalf("Failed to seed voter %s: %v", username, err)
	}
}

// SeedPoll writes a poll record
func (e *Env) SeedPoll(t *testing.T, poll *models.Poll) {
	t.Helper()
	if err := e.Polls.Save(poll); err != nil {
		t.Fatalf("Failed to seed poll %s: %v", poll.ID, err)
	}
}

// Token mints a single invitation token for one participant of a poll
func (e *Env) Token(t *testing.T, pollID, voter string) string {
	t.Helper()
	invitations, err := e.Tokens.Issue(pollID)
	if err != nil {
		t.Fatalf("Failed to issue invitations for %s: %v", pollID, err)
	}
	for _, inv := range invitations {
		if inv.Voter == voter {
			return inv.Token
		}
	}
	t.Fatalf("No invitation for %s on poll %s", voter, pollID)
	return ""
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Do runs one request through the router and records the response
func (e *Env) Do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.Mux.ServeHTTP(w, req)
	return w
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
