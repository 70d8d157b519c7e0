// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/rangepoll/models"
	"github.com/danielhkuo/rangepoll/store"
)

// Invitation tokens stay redeemable for a grace window past the poll
// deadline, so late-vote polls keep working.
const tokenGrace = 30 * 24 * time.Hour

// TokenService mints and validates per-voter invitation tokens. A token is
// an HS256 JWT binding one poll (subject) to one voter (audience); it proves
// the link was handed out by this server, while the authorization decision
// is re-made against the current participant list on every validation.
type TokenService struct {
	secret []byte
	polls  *store.PollStore
	clock  clockwork.Clock
}

func NewTokenService(secret []byte, polls *store.PollStore, clock clockwork.Clock) *TokenService {
	return &TokenService{secret: secret, polls: polls, clock: clock}
}

// LoadSecret reads the signing secret from disk once at startup.
func LoadSecret(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secret file: %w", err)
	}
	secret := []byte(strings.TrimSpace(string(raw)))
	if len(secret) == 0 {
		return nil, fmt.Errorf("secret file %s is empty", path)
	}
	return secret, nil
}

// Issue mints one invitation per allowed participant of the poll.
func (t *TokenService) Issue(pollID string) ([]models.Invitation, error) {
	poll, err := t.polls.Find(pollID)
	if err != nil {
		return nil, err
	}

	expiry := jwt.NewNumericDate(poll.Deadline.Add(tokenGrace))
	invitations := make([]models.Invitation, 0, len(poll.AllowedParticipants))
	for _, voter := range poll.AllowedParticipants {
		claims := jwt.RegisteredClaims{
			Subject:   pollID,
			Audience:  jwt.ClaimStrings{voter},
			ExpiresAt: expiry,
			IssuedAt:  jwt.NewNumericDate(t.clock.Now()),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
		if err != nil {
			return nil, fmt.Errorf("sign invitation for %s: %w", voter, err)
		}
		invitations = append(invitations, models.Invitation{Voter: voter, Token: signed})
	}
	return invitations, nil
}

// Validate checks the token signature and expiry, then re-checks that the
// voter is still on the poll's participant list. Every failure collapses to
// ErrUnauthorized; callers never learn which check tripped.
func (t *TokenService) Validate(token string) (pollID, voterID string, err error) {
	var claims jwt.RegisteredClaims
	// Claims validation is done by hand below against the injected clock;
	// the parser still verifies the signature and signing method.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	_, err = parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid invitation token", models.ErrUnauthorized)
	}
	if !claims.VerifyExpiresAt(t.clock.Now(), true) {
		return "", "", fmt.Errorf("%w: invalid invitation token", models.ErrUnauthorized)
	}
	if claims.Subject == "" || len(claims.Audience) != 1 || claims.Audience[0] == "" {
		return "", "", fmt.Errorf("%w: invalid invitation token", models.ErrUnauthorized)
	}

	pollID, voterID = claims.Subject, claims.Audience[0]
	poll, err := t.polls.Find(pollID)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid invitation token", models.ErrUnauthorized)
	}
	if !poll.Allowed(voterID) {
		// Removed participants keep their old tokens but lose access.
		return "", "", fmt.Errorf("%w: invalid invitation token", models.ErrUnauthorized)
	}
	return pollID, voterID, nil
}
