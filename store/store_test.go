// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/rangepoll/models"
)

func samplePoll(id string) *models.Poll {
	return &models.Poll{
		ID:                  id,
		Name:                "Team lunch",
		Description:         "Where to eat",
		AllowedParticipants: []string{"alice", "bob"},
		Deadline:            models.NewDeadline(time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)),
		Choices: []models.Choice{
			{Name: "sushi", Votes: []int{4}, Voters: []string{"alice"}},
			{Name: "pizza", Votes: []int{2}, Voters: []string{"alice"}},
		},
		Algorithm: models.AlgorithmMax,
	}
}

func TestPollStoreRoundTrip(t *testing.T) {
	s := NewPollStore(t.TempDir(), models.AlgorithmMax)

	require.NoError(t, s.Save(samplePoll("lunch")))

	got, err := s.Find("lunch")
	require.NoError(t, err)
	assert.Equal(t, samplePoll("lunch"), got)
}

func TestPollStoreFindMissing(t *testing.T) {
	s := NewPollStore(t.TempDir(), models.AlgorithmMax)

	_, err := s.Find("nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPollStoreAppliesDefaultAlgorithm(t *testing.T) {
	dir := t.TempDir()
	record := `name: Quick one
allowed_participant: [alice]
deadline_date: 2025-12-01 12:00:00
choices:
  - name: "yes"
    vote: []
    voter: []
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quick.yml"), []byte(record), 0o644))

	s := NewPollStore(dir, models.AlgorithmBordat)
	got, err := s.Find("quick")
	require.NoError(t, err)
	assert.Equal(t, models.AlgorithmBordat, got.Algorithm)
}

func TestPollStoreListSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewPollStore(dir, models.AlgorithmMax)
	require.NoError(t, s.Save(samplePoll("good")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yml"), []byte(": not yaml ["), 0o644))

	polls, err := s.List()
	require.NoError(t, err)
	require.Len(t, polls, 1)
	assert.Equal(t, "good", polls[0].ID)
}

func TestPollStoreRejectsInvalidRecordOnSave(t *testing.T) {
	s := NewPollStore(t.TempDir(), models.AlgorithmMax)
	poll := samplePoll("bad")
	poll.Choices[0].Votes = []int{4, 9} // parallel arrays out of sync

	assert.ErrorIs(t, s.Save(poll), models.ErrInvalidInput)
}

func TestPollStoreDelete(t *testing.T) {
	s := NewPollStore(t.TempDir(), models.AlgorithmMax)
	require.NoError(t, s.Save(samplePoll("gone")))

	require.NoError(t, s.Delete("gone"))
	_, err := s.Find("gone")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, s.Delete("gone"), models.ErrNotFound)
}

func TestPollStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewPollStore(dir, models.AlgorithmMax)
	require.NoError(t, s.Save(samplePoll("lunch")))
	require.NoError(t, s.Save(samplePoll("lunch"))) // overwrite in place

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "lunch.yml", entries[0].Name())
}

func TestVoterStoreRoundTrip(t *testing.T) {
	s := NewVoterStore(t.TempDir())
	voter := &models.Voter{
		ID:           "isaac",
		Username:     "isaac",
		Fullname:     "Isaac Newton",
		Presentation: "physicist",
		Password:     "s3cret",
		Admin:        true,
	}
	require.NoError(t, s.Save(voter))

	got, err := s.FindByUsername("isaac")
	require.NoError(t, err)
	assert.Equal(t, voter, got)
	assert.Equal(t, "s3cret", got.Password)

	_, err = s.FindByUsername("leibniz")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDescriptionPrefersPlainText(t *testing.T) {
	s := NewPollStore(t.TempDir(), models.AlgorithmMax)
	poll := samplePoll("lunch")

	desc, err := s.Description(poll)
	require.NoError(t, err)
	assert.Equal(t, "Where to eat", desc)
}

func TestDescriptionRendersMarkdown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lunch.md"), []byte("# Lunch\n\nPick *well*.\n"), 0o644))

	s := NewPollStore(dir, models.AlgorithmMax)
	poll := samplePoll("lunch")
	poll.Description = ""
	poll.DescMarkdown = "lunch.md"

	desc, err := s.Description(poll)
	require.NoError(t, err)
	assert.Contains(t, desc, "<h1>Lunch</h1>")
	assert.Contains(t, desc, "<em>well</em>")
}

func TestDescriptionFallsBackToID(t *testing.T) {
	s := NewPollStore(t.TempDir(), models.AlgorithmMax)
	poll := samplePoll("lunch")
	poll.Description = ""

	desc, err := s.Description(poll)
	require.NoError(t, err)
	assert.Equal(t, "lunch", desc)
}

func TestTemplatesAreValidRecords(t *testing.T) {
	dir := t.TempDir()
	pollPath := filepath.Join(dir, "example.yml")
	require.NoError(t, WriteTemplate(pollPath, PollTemplate()))

	s := NewPollStore(dir, models.AlgorithmMax)
	poll, err := s.Find("example")
	require.NoError(t, err)
	assert.Equal(t, models.AlgorithmBordat, poll.Algorithm)
	assert.Len(t, poll.Choices, 2)

	voterDir := t.TempDir()
	require.NoError(t, WriteTemplate(filepath.Join(voterDir, "isaac.yml"), VoterTemplate(true)))
	vs := NewVoterStore(voterDir)
	voter, err := vs.FindByUsername("Isaac")
	require.NoError(t, err)
	assert.True(t, voter.Admin)
}
