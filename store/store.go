// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/rangepoll/models"
)

// ioAttempts bounds the retry loop for transient read/write failures before
// a StorageError is surfaced.
const ioAttempts = 3

// PollStore reads and writes poll records, one YAML file per poll under a
// single directory. The record id is the file stem: polls/team-lunch.yml
// is poll "team-lunch".
type PollStore struct {
	dir        string
	defaultAlg models.VotingAlgorithm
}

// NewPollStore returns a store over dir. Records with no voting_algorithm
// field get defaultAlg, which makes the configured default explicit instead
// of relying on field-absence behavior.
func NewPollStore(dir string, defaultAlg models.VotingAlgorithm) *PollStore {
	return &PollStore{dir: dir, defaultAlg: defaultAlg}
}

// List loads every poll in the directory. Unparsable files are skipped with
// a warning, matching the forgiving directory-scan behavior voters expect:
// one broken record must not take down every poll.
func (s *PollStore) List() ([]models.Poll, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.yml"))
	if err != nil {
		return nil, &models.StorageError{Op: "list", Path: s.dir, Err: err}
	}
	polls := make([]models.Poll, 0, len(paths))
	for _, path := range paths {
		poll, err := s.load(path)
		if err != nil {
			slog.Warn("skipping unparsable poll file", "path", path, "error", err)
			continue
		}
		polls = append(polls, *poll)
	}
	return polls, nil
}

// Find loads one poll by id.
func (s *PollStore) Find(id string) (*models.Poll, error) {
	path := filepath.Join(s.dir, id+".yml")
	poll, err := s.load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: poll %q", models.ErrNotFound, id)
	}
	return poll, err
}

// Save validates and persists the whole record as a single atomic replace:
// the new content is written to a temp file in the same directory and
// renamed over the old one, so readers never observe a partial record.
func (s *PollStore) Save(poll *models.Poll) error {
	if err := poll.Validate(); err != nil {
		return err
	}
	out, err := yaml.Marshal(poll)
	if err != nil {
		return &models.StorageError{Op: "save", Path: poll.ID, Err: err}
	}
	return writeAtomic(filepath.Join(s.dir, poll.ID+".yml"), out)
}

// Delete removes the backing record.
func (s *PollStore) Delete(id string) error {
	path := filepath.Join(s.dir, id+".yml")
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: poll %q", models.ErrNotFound, id)
	}
	if err != nil {
		return &models.StorageError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

func (s *PollStore) load(path string) (*models.Poll, error) {
	content, err := readRetry(path)
	if err != nil {
		return nil, err
	}
	var poll models.Poll
	if err := yaml.Unmarshal(content, &poll); err != nil {
		return nil, &models.StorageError{Op: "parse", Path: path, Err: err}
	}
	poll.ID = stem(path)
	if poll.Algorithm == "" {
		poll.Algorithm = s.defaultAlg
	}
	if err := poll.Validate(); err != nil {
		return nil, err
	}
	return &poll, nil
}

// VoterStore reads and writes voter records, one YAML file per voter.
type VoterStore struct {
	dir string
}

func NewVoterStore(dir string) *VoterStore {
	return &VoterStore{dir: dir}
}

// List loads every voter record, skipping unparsable files with a warning.
func (s *VoterStore) List() ([]models.Voter, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.yml"))
	if err != nil {
		return nil, &models.StorageError{Op: "list", Path: s.dir, Err: err}
	}
	voters := make([]models.Voter, 0, len(paths))
	for _, path := range paths {
		content, err := readRetry(path)
		if err != nil {
			slog.Warn("skipping unreadable voter file", "path", path, "error", err)
			continue
		}
		var voter models.Voter
		if err := yaml.Unmarshal(content, &voter); err != nil {
			slog.Warn("skipping unparsable voter file", "path", path, "error", err)
			continue
		}
		voter.ID = stem(path)
		voters = append(voters, voter)
	}
	return voters, nil
}

// FindByUsername locates the voter whose username matches exactly.
func (s *VoterStore) FindByUsername(username string) (*models.Voter, error) {
	voters, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range voters {
		if voters[i].Username == username {
			return &voters[i], nil
		}
	}
	return nil, fmt.Errorf("%w: voter %q", models.ErrNotFound, username)
}

// Save persists the voter record under its id.
func (s *VoterStore) Save(voter *models.Voter) error {
	if voter.Username == "" {
		return fmt.Errorf("%w: voter has no username", models.ErrInvalidInput)
	}
	out, err := yaml.Marshal(voter)
	if err != nil {
		return &models.StorageError{Op: "save", Path: voter.ID, Err: err}
	}
	return writeAtomic(filepath.Join(s.dir, voter.ID+".yml"), out)
}

// Delete removes the voter record.
func (s *VoterStore) Delete(id string) error {
	path := filepath.Join(s.dir, id+".yml")
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: voter %q", models.ErrNotFound, id)
	}
	if err != nil {
		return &models.StorageError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

// readRetry reads a file, retrying transient failures with a short backoff.
// A missing file is not transient and returns immediately.
func readRetry(path string) ([]byte, error) {
	var content []byte
	var err error
	for attempt := 0; attempt < ioAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 25 * time.Millisecond)
		}
		content, err = os.ReadFile(path)
		if err == nil {
			return content, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &models.StorageError{Op: "read", Path: path, Err: err}
}

// writeAtomic writes content to a temp file and renames it into place,
// retrying transient failures with a short backoff.
func writeAtomic(path string, content []byte) error {
	var err error
	for attempt := 0; attempt < ioAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 25 * time.Millisecond)
		}
		if err = writeOnce(path, content); err == nil {
			return nil
		}
	}
	return &models.StorageError{Op: "write", Path: path, Err: err}
}

func writeOnce(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
