// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally computes poll results.

# Vote Matrix

The sparse per-choice voter/score arrays are first folded into a dense grid:

	m := tally.BuildMatrix(poll)

Rows are the distinct voters who cast any vote (sorted), columns are the
choices in declaration order, and a missing vote is a zero cell. The build is
deterministic, so two builds of the same poll compare equal.

# Algorithms

	result, err := tally.Compute(poll)

Compute is pure and dispatches on the poll's voting_algorithm tag:

  - max: column sum divided by the number of voters who voted at all
  - binary: raw column sum; score_max is the largest sum
  - bordat: per-voter rank normalization (1..N), then the max rule
  - condorcet: pairwise duels won against a strict majority threshold
  - first-choice: one point to each voter's highest-scored choice
  - french-system, successive-elimination: UnimplementedError

Algorithms other than max and binary require each voter's scores to be
pairwise distinct; a tie fails with DuplicateRankError naming the voter.

Results are sorted by descending score with a stable sort, so tied choices
keep their declaration order.

# Completeness

When the poll sets show-only-complete-result and any allowed participant is
missing a score anywhere, Compute returns the pending result (Pending=true,
no ranking) instead of an error.
*/
package tally
