// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the RangePoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, tokens, voters, cfg)

# Endpoints

Health:

	GET /health

Polls (basic auth, or a poll-scoped invitation token):

	GET  /polls               - List polls the voter may join
	GET  /polls/{id}          - Poll detail with resolved descriptions
	POST /polls/{id}/votes    - Submit a ballot (invitation token only)
	GET  /polls/{id}/results  - Current tally, pending when incomplete

Invitations:

	POST /polls/{id}/invitations - Mint tokens for every participant (admin)
	GET  /invitations/{token}    - Validate a token

Record maintenance (basic auth, admin voters only):

	PUT    /admin/voters/{name}
	DELETE /admin/voters/{name}
	PUT    /admin/polls/{id}
	DELETE /admin/polls/{id}
	POST   /admin/polls/{id}/participants/{name}
	DELETE /admin/polls/{id}/participants/{name}
*/
package router
