// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth covers the two ways a request proves who it is.

# Invitation Tokens

An invitation token is an HS256 JWT signed with the server secret:

	sub: poll id
	aud: voter username
	exp: poll deadline + 30 days

Tokens are links, not sessions. Issuing mints one token per allowed
participant; validating re-reads the poll and re-checks membership, so
removing a participant revokes every token they were ever sent without any
token bookkeeping.

# Credentials

CheckCredentials compares a username/password pair against the voter
records in constant time. It backs the basic-auth path used by admins.
*/
package auth
