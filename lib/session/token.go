// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-jwt/jwt/v4"

	"github.com/velvet-club/velvet/lib/api"
)

// Claims are the identity fields embedded in the credential token.
// They are decoded WITHOUT signature verification — the client has no
// signing key and does not need one. The claims only pre-populate the
// UI before the profile fetch; the backend re-verifies the token on
// every request.
type Claims struct {
	UserID   int64
	Username string
	Role     api.Role
}

// tokenClaims is the JWT payload shape the service issues.
type tokenClaims struct {
	Role     string `json:"role,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// DecodeClaims extracts the unverified claims from a credential token.
func DecodeClaims(token string) (*Claims, error) {
	var payload tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &payload); err != nil {
		return nil, fmt.Errorf("decoding token claims: %w", err)
	}

	claims := &Claims{
		Username: payload.Username,
		Role:     api.Role(payload.Role),
	}
	if payload.Subject != "" {
		userID, err := strconv.ParseInt(payload.Subject, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("token subject %q is not a user ID: %w", payload.Subject, err)
		}
		claims.UserID = userID
	}
	return claims, nil
}

// TokenFilePath returns the location of the persisted credential
// token. Checks the VELVET_SESSION_FILE environment variable first,
// then $XDG_CONFIG_HOME/velvet/session.json, then
// ~/.config/velvet/session.json.
func TokenFilePath() string {
	if envPath := os.Getenv("VELVET_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join(os.TempDir(), "velvet-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "velvet", "session.json")
}
