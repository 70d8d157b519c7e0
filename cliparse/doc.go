// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p          Server port
	-polls      Directory of poll records
	-voters     Directory of voter records
	-secret     File holding the token signing secret
	-algorithm  Voting algorithm for polls that name none
	-base-url   Public base URL used in invitation links
	-gen-poll   Write an example poll record and exit
	-gen-voter  Write an example voter record and exit

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	POLLS_DIR         → -polls
	VOTERS_DIR        → -voters
	SECRET_FILE       → -secret
	DEFAULT_ALGORITHM → -algorithm
	BASE_URL          → -base-url

CLI flags take precedence over environment variables. Defaults: port 8000,
directories "polls" and "voters", secret file "secret.txt", algorithm "max".

ParseFlags returns an error when the algorithm is not one of the recognized
tags or PORT is not a number.
*/
package cliparse
