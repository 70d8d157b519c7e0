// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/rangepoll/models"
	"github.com/danielhkuo/rangepoll/store"
	"github.com/danielhkuo/rangepoll/tally"
)

// Service owns all poll operations. Submissions against the same poll are
// serialized through a per-poll mutex so the read-merge-write-recompute
// cycle is never interleaved; readers of a tally are not excluded.
type Service struct {
	polls  *store.PollStore
	voters *store.VoterStore
	clock  clockwork.Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(polls *store.PollStore, voters *store.VoterStore, clock clockwork.Clock) *Service {
	return &Service{
		polls:  polls,
		voters: voters,
		clock:  clock,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Service) pollLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// SubmitVote merges one voter's ballot into the poll, persists the whole
// record, and returns the fresh tally. The ballot's voter identity must come
// from the authenticated session, never from submitted form data.
//
// The candidate new state is built and validated completely before anything
// is persisted; a ballot that fails on the last choice leaves no trace of
// the earlier ones.
func (s *Service) SubmitVote(pollID string, ballot models.Ballot) (models.TallyResult, error) {
	lock := s.pollLock(pollID)
	lock.Lock()
	defer lock.Unlock()

	poll, err := s.polls.Find(pollID)
	if err != nil {
		return models.TallyResult{}, err
	}
	if !poll.Allowed(ballot.Voter) {
		return models.TallyResult{}, fmt.Errorf("%w: %s may not vote on %s",
			models.ErrPermissionDenied, ballot.Voter, pollID)
	}
	if s.clock.Now().After(poll.Deadline.Time) && !poll.Options.AllowLateVote {
		return models.TallyResult{}, fmt.Errorf("%w: %s closed at %s",
			models.ErrTimedOut, pollID, poll.Deadline)
	}

	for name, score := range ballot.Scores {
		if score < 0 {
			return models.TallyResult{}, fmt.Errorf("%w: negative score %d for %q",
				models.ErrInvalidInput, score, name)
		}
	}
	if !poll.Options.AllowMissingChoice {
		for _, c := range poll.Choices {
			if _, ok := ballot.Scores[c.Name]; !ok {
				return models.TallyResult{}, fmt.Errorf("%w: ballot is missing choice %q",
					models.ErrInvalidInput, c.Name)
			}
		}
	}

	next := poll.Clone()
	for i := range next.Choices {
		if score, ok := ballot.Scores[next.Choices[i].Name]; ok {
			next.Choices[i].SetVote(ballot.Voter, score)
		}
	}

	if err := s.polls.Save(next); err != nil {
		return models.TallyResult{}, err
	}
	slog.Info("vote recorded", "poll", pollID, "voter", ballot.Voter)

	return tally.Compute(next)
}

// GetTally computes the current result for a voter who is allowed to see it.
func (s *Service) GetTally(pollID, voterID string) (models.TallyResult, error) {
	poll, err := s.polls.Find(pollID)
	if err != nil {
		return models.TallyResult{}, err
	}
	if !poll.Allowed(voterID) {
		return models.TallyResult{}, fmt.Errorf("%w: %s may not view %s",
			models.ErrPermissionDenied, voterID, pollID)
	}
	return tally.Compute(poll)
}

// GetPoll returns one poll for display, with markdown descriptions resolved.
func (s *Service) GetPoll(pollID, voterID string) (*models.Poll, error) {
	poll, err := s.polls.Find(pollID)
	if err != nil {
		return nil, err
	}
	if !poll.Allowed(voterID) {
		return nil, fmt.Errorf("%w: %s may not view %s",
			models.ErrPermissionDenied, voterID, pollID)
	}

	out := poll.Clone()
	if out.Description, err = s.polls.Description(poll); err != nil {
		return nil, err
	}
	out.DescMarkdown = ""
	for i := range out.Choices {
		if out.Choices[i].Description, err = s.polls.ChoiceDescription(&out.Choices[i]); err != nil {
			return nil, err
		}
		out.Choices[i].DescMarkdown = ""
	}
	return out, nil
}

// ListPolls summarizes every poll the voter may participate in.
func (s *Service) ListPolls(voterID string) ([]models.PollSummary, error) {
	all, err := s.polls.List()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	summaries := make([]models.PollSummary, 0, len(all))
	for i := range all {
		poll := &all[i]
		if !poll.Allowed(voterID) {
			continue
		}
		desc, err := s.polls.Description(poll)
		if err != nil {
			slog.Warn("failed to resolve poll description", "poll", poll.ID, "error", err)
			desc = poll.ID
		}
		deadline := poll.Deadline.Time
		summaries = append(summaries, models.PollSummary{
			ID:             poll.ID,
			Name:           poll.Name,
			Description:    desc,
			Deadline:       poll.Deadline.String(),
			DeadlineIn:     humanize.RelTime(deadline, now, "ago", "from now"),
			DeadlineNear:   deadline.Sub(now) < 24*time.Hour,
			DeadlinePassed: now.After(deadline),
			Complete:       tally.Complete(poll),
			Options:        poll.Options,
		})
	}
	return summaries, nil
}
