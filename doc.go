// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the RangePoll API server.

RangePoll is a small range-voting service for closed groups: every poll is a
YAML file on disk, every participant scores every choice, and one of several
tallying algorithms turns the score grid into a ranking.

# Starting the Server

	go run . -p 8000 -polls ./polls -voters ./voters -secret secret.txt

A .env file is loaded if present; the real environment takes precedence.

# Configuration

Optional settings (flag / env, with defaults):

  - PORT (-p): Server port (default: 8000)
  - POLLS_DIR (-polls): Poll record directory (default: polls)
  - VOTERS_DIR (-voters): Voter record directory (default: voters)
  - SECRET_FILE (-secret): Token signing secret file (default: secret.txt)
  - DEFAULT_ALGORITHM (-algorithm): Algorithm for polls naming none (default: max)
  - BASE_URL (-base-url): Public base URL for invitation links

Bootstrap a fresh installation with -gen-poll and -gen-voter, which write
example records and exit.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, votes, results, invitations, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, error-to-status mapping
  - models: Record and request/response types
  - polls: Vote submission, tallies, admin maintenance
  - tally: The voting algorithms over the vote matrix
  - store: YAML file-per-record storage
  - auth: Invitation tokens and credential checks
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
