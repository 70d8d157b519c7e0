// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/rangepoll/models"
)

func TestAdminGate(t *testing.T) {
	svc, pollStore, _ := newTestService(t)
	seedPoll(t, pollStore, models.PollOptions{})

	// alice exists but is not an admin; mallory has no record at all.
	for _, actor := range []string{"alice", "mallory"} {
		assert.ErrorIs(t, svc.DeletePoll(actor, "lunch"), models.ErrPermissionDenied)
		assert.ErrorIs(t, svc.DeleteVoter(actor, "alice"), models.ErrPermissionDenied)
		assert.ErrorIs(t, svc.AddParticipant(actor, "lunch", "alice"), models.ErrPermissionDenied)
	}

	// The record is still there.
	_, err := pollStore.Find("lunch")
	require.NoError(t, err)
}

func TestUpsertAndDeleteVoter(t *testing.T) {
	svc, _, _ := newTestService(t)

	voter := &models.Voter{
		ID: "carol", Username: "carol", Presentation: "new hire", Password: "pw",
	}
	require.NoError(t, svc.UpsertVoter("root", voter))

	voter.Presentation = "engineer"
	require.NoError(t, svc.UpsertVoter("root", voter))

	require.NoError(t, svc.DeleteVoter("root", "carol"))
	assert.ErrorIs(t, svc.DeleteVoter("root", "carol"), models.ErrNotFound)
}

func TestUpsertPoll(t *testing.T) {
	svc, pollStore, _ := newTestService(t)

	poll := seedPoll(t, pollStore, models.PollOptions{})
	poll.Name = "Team lunch, round two"
	require.NoError(t, svc.UpsertPoll("root", poll))

	saved, err := pollStore.Find("lunch")
	require.NoError(t, err)
	assert.Equal(t, "Team lunch, round two", saved.Name)
}

func TestUpsertPollDeadlineImmutableWithVotes(t *testing.T) {
	svc, pollStore, _ := newTestService(t)

	// The seeded poll already carries bob's votes.
	poll := seedPoll(t, pollStore, models.PollOptions{})
	poll.Deadline = models.NewDeadline(testDeadline.Add(24 * time.Hour))
	assert.ErrorIs(t, svc.UpsertPoll("root", poll), models.ErrInvalidInput)

	// Without votes the deadline can still move.
	empty := seedPoll(t, pollStore, models.PollOptions{})
	empty.ID = "fresh"
	for i := range empty.Choices {
		empty.Choices[i].Votes = nil
		empty.Choices[i].Voters = nil
	}
	require.NoError(t, svc.UpsertPoll("root", empty))
	empty.Deadline = models.NewDeadline(testDeadline.Add(24 * time.Hour))
	require.NoError(t, svc.UpsertPoll("root", empty))
}

func TestDeletePoll(t *testing.T) {
	svc, pollStore, _ := newTestService(t)
	seedPoll(t, pollStore, models.PollOptions{})

	require.NoError(t, svc.DeletePoll("root", "lunch"))
	_, err := pollStore.Find("lunch")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAddParticipant(t *testing.T) {
	svc, pollStore, _ := newTestService(t)
	seedPoll(t, pollStore, models.PollOptions{})

	require.NoError(t, svc.UpsertVoter("root", &models.Voter{
		ID: "carol", Username: "carol", Presentation: "new hire", Password: "pw",
	}))

	require.NoError(t, svc.AddParticipant("root", "lunch", "carol"))
	require.NoError(t, svc.AddParticipant("root", "lunch", "carol")) // idempotent

	saved, err := pollStore.Find("lunch")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, saved.AllowedParticipants)

	// Unregistered voters cannot be granted access.
	assert.ErrorIs(t, svc.AddParticipant("root", "lunch", "ghost"), models.ErrNotFound)
}

func TestRemoveParticipantKeepsVotes(t *testing.T) {
	svc, pollStore, _ := newTestService(t)
	seedPoll(t, pollStore, models.PollOptions{})

	require.NoError(t, svc.RemoveParticipant("root", "lunch", "bob"))

	saved, err := pollStore.Find("lunch")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, saved.AllowedParticipants)
	// bob's recorded votes survive; only access is revoked.
	assert.GreaterOrEqual(t, saved.Choices[0].VoterIndex("bob"), 0)

	_, err = svc.GetTally("lunch", "bob")
	assert.ErrorIs(t, err, models.ErrPermissionDenied)
}
