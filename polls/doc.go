// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package polls implements the poll operations on top of the file stores and
the tally engine.

# Vote Submission

	result, err := svc.SubmitVote("team-lunch", models.Ballot{
		Voter:  "alice", // from the authenticated session, never the form
		Scores: map[string]int{"sushi": 4, "pizza": 2},
	})

Checks run in a fixed order: participant allowed, deadline (honoring
allow-late-vote), then a full ballot validation against the missing-choice
policy. Only after everything passes is the candidate record built, saved as
one atomic replace, and re-tallied. Submitting the same ballot twice is a
no-op after the first application.

Submissions to the same poll are serialized by a per-poll mutex; concurrent
submissions to different polls proceed independently, and tally readers are
never blocked.

The deadline clock is injected (clockwork), so tests can sit one second on
either side of a deadline deterministically.

# Reads

GetTally recomputes the result for an allowed voter; GetPoll returns the
record with markdown descriptions resolved; ListPolls summarizes every poll
a voter may join, with humanized deadline distances.

# Administration

Upsert/Delete for polls and voter records plus participant maintenance, all
gated on the acting user's admin flag. The deadline of a poll that already
holds votes cannot be changed.
*/
package polls
