// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable failure classes. Callers match them
// with errors.Is; none of them should ever abort the process.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrTimedOut         = errors.New("deadline passed")
	ErrUnauthorized     = errors.New("unauthorized")
)

// DuplicateRankError reports a voter who assigned the same score to two or
// more choices under an algorithm that requires strict per-voter ranking.
type DuplicateRankError struct {
	Voter     string
	Algorithm VotingAlgorithm
}

func (e *DuplicateRankError) Error() string {
	return fmt.Sprintf("duplicate score by voter %q under %s", e.Voter, e.Algorithm)
}

// UnimplementedError reports a recognized algorithm with no tallying rule.
// It is returned explicitly rather than falling back to another rule.
type UnimplementedError struct {
	Algorithm VotingAlgorithm
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("voting algorithm %s is not implemented", e.Algorithm)
}

// StorageError wraps a read/write/parse failure of a backing record.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
