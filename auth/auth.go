// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"fmt"

	"github.com/danielhkuo/rangepoll/models"
	"github.com/danielhkuo/rangepoll/store"
)

// CheckCredentials verifies a username/password pair against the voter
// records. The comparison is constant-time, and unknown users get the same
// error as wrong passwords.
func CheckCredentials(voters *store.VoterStore, username, password string) (*models.Voter, error) {
	voter, err := voters.FindByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: bad credentials", models.ErrUnauthorized)
	}
	if !hmac.Equal([]byte(password), []byte(voter.Password)) {
		return nil, fmt.Errorf("%w: bad credentials", models.ErrUnauthorized)
	}
	return voter, nil
}
