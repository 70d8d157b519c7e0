// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and response helpers.

WithLogging tags every request with a generated id, logs start and
completion with timing, and echoes the id in X-Request-Id. CORS handles
cross-origin requests including preflight.

WriteDomainError is the single place where domain errors turn into HTTP
status codes; handlers return domain errors and never pick statuses
themselves. Storage failures and unknown errors are logged server-side and
reported to the client as a bare 500.
*/
package middleware
