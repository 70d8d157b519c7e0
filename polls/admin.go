// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/rangepoll/models"
)

// requireAdmin verifies the acting user exists and carries the admin flag.
func (s *Service) requireAdmin(actor string) error {
	voter, err := s.voters.FindByUsername(actor)
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%w: %s is not an admin", models.ErrPermissionDenied, actor)
	}
	if err != nil {
		return err
	}
	if !voter.Admin {
		return fmt.Errorf("%w: %s is not an admin", models.ErrPermissionDenied, actor)
	}
	return nil
}

// UpsertVoter creates or replaces a voter record.
func (s *Service) UpsertVoter(actor string, voter *models.Voter) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.voters.Save(voter); err != nil {
		return err
	}
	slog.Info("voter record saved", "voter", voter.ID, "actor", actor)
	return nil
}

// DeleteVoter removes a voter record.
func (s *Service) DeleteVoter(actor, id string) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if err := s.voters.Delete(id); err != nil {
		return err
	}
	slog.Info("voter record deleted", "voter", id, "actor", actor)
	return nil
}

// UpsertPoll creates or replaces a poll record. The deadline of a poll that
// already holds votes is immutable; votes can only change through the
// submission path.
func (s *Service) UpsertPoll(actor string, poll *models.Poll) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}

	lock := s.pollLock(poll.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.polls.Find(poll.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	if existing != nil && existing.HasVotes() && !existing.Deadline.Equal(poll.Deadline.Time) {
		return fmt.Errorf("%w: deadline of %s cannot change once votes exist",
			models.ErrInvalidInput, poll.ID)
	}

	if err := s.polls.Save(poll); err != nil {
		return err
	}
	slog.Info("poll record saved", "poll", poll.ID, "actor", actor)
	return nil
}

// DeletePoll removes a poll record.
func (s *Service) DeletePoll(actor, id string) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}

	lock := s.pollLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := s.polls.Delete(id); err != nil {
		return err
	}
	slog.Info("poll record deleted", "poll", id, "actor", actor)
	return nil
}

// AddParticipant adds a registered voter to the poll's allowed list.
func (s *Service) AddParticipant(actor, pollID, username string) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.voters.FindByUsername(username); err != nil {
		return err
	}

	lock := s.pollLock(pollID)
	lock.Lock()
	defer lock.Unlock()

	poll, err := s.polls.Find(pollID)
	if err != nil {
		return err
	}
	if poll.Allowed(username) {
		return nil
	}
	next := poll.Clone()
	next.AllowedParticipants = append(next.AllowedParticipants, username)
	return s.polls.Save(next)
}

// RemoveParticipant removes a voter from the poll's allowed list. Their
// recorded votes stay in the choice arrays; they simply lose access, which
// also revokes any invitation token still in flight.
func (s *Service) RemoveParticipant(actor, pollID, username string) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}

	lock := s.pollLock(pollID)
	lock.Lock()
	defer lock.Unlock()

	poll, err := s.polls.Find(pollID)
	if err != nil {
		return err
	}
	next := poll.Clone()
	kept := next.AllowedParticipants[:0]
	for _, v := range next.AllowedParticipants {
		if v != username {
			kept = append(kept, v)
		}
	}
	next.AllowedParticipants = kept
	return s.polls.Save(next)
}
