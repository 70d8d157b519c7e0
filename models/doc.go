// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the poll and voter records, the tally types, and the
error taxonomy shared by every other package.

# Records

Poll and Voter mirror the on-disk YAML records one-to-one:

  - Poll: name, description (or desc_markdown file reference),
    allowed_participant list, deadline_date, ordered choices,
    voting_algorithm tag, options block
  - Choice: name, description, and the parallel voter/vote arrays
    (Voters[i] gave Votes[i] points)
  - Voter: username (the identity used everywhere), fullname, email,
    presentation, password, admin flag

Poll.Validate enforces the record invariants: unique participants, parallel
arrays of equal length with no duplicate voter, non-negative scores.

# Deadlines

Deadline serializes as "2006-01-02 15:04:05" in UTC, the fixed textual
format of the poll files:

	deadline_date: 2025-11-30 18:00:00

# Voting Algorithms

The seven recognized tags:

	max, binary, bordat, condorcet, first-choice,
	french-system, successive-elimination

french-system and successive-elimination are recognized but have no tallying
rule yet; the tally engine reports them as unimplemented instead of falling
back to another rule.

# Tally Results

TallyResult carries either a ranking (descending score, ties in
choice-declaration order) with a score_max reference for display scaling, or
Pending=true when the poll demands a complete vote that is not yet met.
Pending is a success value, not an error.

# Errors

Sentinel errors (ErrNotFound, ErrPermissionDenied, ErrInvalidInput,
ErrTimedOut, ErrUnauthorized) are matched with errors.Is; DuplicateRankError,
UnimplementedError and StorageError carry structure and are matched with
errors.As.
*/
package models
