// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists poll and voter records as YAML files.

# Layout

One file per record; the file stem is the record id:

	polls/team-lunch.yml   -> poll "team-lunch"
	voters/isaac.yml       -> voter record "isaac"

# Stores

	polls := store.NewPollStore("polls", models.AlgorithmMax)
	voters := store.NewVoterStore("voters")

PollStore applies the configured default algorithm to records that omit the
voting_algorithm field, and validates every record on load and before save.

Save is a single atomic replace (temp file + rename), so a concurrent reader
never sees a partial record. Reads and writes retry transient IO failures
with a short backoff before surfacing a StorageError; a missing file maps to
ErrNotFound immediately.

List skips unparsable files with a warning rather than failing the whole
directory scan.

# Descriptions

A record may carry either a plain description or a desc_markdown file
reference. Description and ChoiceDescription resolve whichever is present,
rendering markdown to HTML:

	html, err := polls.Description(poll)

# Templates

PollTemplate and VoterTemplate produce example records for bootstrapping a
fresh installation via the -gen-poll and -gen-voter flags.
*/
package store
