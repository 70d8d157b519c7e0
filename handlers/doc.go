// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the JSON API.

Handlers resolve the caller's identity, decode the payload, call into the
polls service or token service, and hand any domain error to
middleware.WriteDomainError for the status mapping. They hold no business
rules of their own.

Identity comes in two forms: an invitation token in the Authorization
bearer header (poll-scoped, the only accepted identity for vote
submission), or HTTP basic auth against the voter records (listing, and
everything under /admin).
*/
package handlers
