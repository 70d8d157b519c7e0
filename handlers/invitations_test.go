// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/rangepoll/models"
	"github.com/danielhkuo/rangepoll/testutil"
)

func TestIssueInvitations(t *testing.T) {
	env := newEnv(t)

	req := testutil.MakeRequest("POST", "/polls/lunch/invitations", nil, nil)
	req.SetBasicAuth("root", "rootpw")
	w := env.Do(req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp struct {
		Poll        string `json:"poll"`
		Invitations []struct {
			Voter string `json:"voter"`
			Token string `json:"token"`
		} `json:"invitations"`
	}
	testutil.AssertJSON(t, w, &resp)
	if resp.Poll != "lunch" || len(resp.Invitations) != 2 {
		t.Fatalf("Expected two invitations for lunch, got %+v", resp)
	}

	// Every minted token round-trips through validation.
	for _, inv := range resp.Invitations {
		pollID, voterID, err := env.Tokens.Validate(inv.Token)
		if err != nil {
			t.Fatalf("Token for %s failed validation: %v", inv.Voter, err)
		}
		if pollID != "lunch" || voterID != inv.Voter {
			t.Errorf("Token bound to (%s, %s), want (lunch, %s)", pollID, voterID, inv.Voter)
		}
	}
}

func TestIssueInvitationsRequiresAdmin(t *testing.T) {
	env := newEnv(t)

	req := testutil.MakeRequest("POST", "/polls/lunch/invitations", nil, nil)
	req.SetBasicAuth("alice", "alicepw")
	testutil.AssertStatus(t, env.Do(req), http.StatusForbidden)

	testutil.AssertStatus(t,
		env.Do(testutil.MakeRequest("POST", "/polls/lunch/invitations", nil, nil)),
		http.StatusUnauthorized)
}

func TestIssueInvitationsUnknownPoll(t *testing.T) {
	env := newEnv(t)

	req := testutil.MakeRequest("POST", "/polls/nope/invitations", nil, nil)
	req.SetBasicAuth("root", "rootpw")
	testutil.AssertStatus(t, env.Do(req), http.StatusNotFound)
}

func TestValidateInvitation(t *testing.T) {
	env := newEnv(t)
	token := env.Token(t, "lunch", "alice")

	w := env.Do(testutil.MakeRequest("GET", "/invitations/"+token, nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ValidateTokenResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Poll != "lunch" || resp.Voter != "alice" {
		t.Errorf("Unexpected validation payload: %+v", resp)
	}
}

func TestValidateInvitationGarbage(t *testing.T) {
	env := newEnv(t)

	w := env.Do(testutil.MakeRequest("GET", "/invitations/not-a-token", nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestValidateInvitationRevokedByRemoval(t *testing.T) {
	env := newEnv(t)
	token := env.Token(t, "lunch", "alice")

	if err := env.Service.RemoveParticipant("root", "lunch", "alice"); err != nil {
		t.Fatal(err)
	}

	w := env.Do(testutil.MakeRequest("GET", "/invitations/"+token, nil, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
