// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/velvet-club/velvet/lib/api"
)

// Manager ties together the in-memory store, the on-disk token file,
// and the authentication endpoints. All entry points into the
// authentication lifecycle go through it.
type Manager struct {
	client *api.Client
	store  *Store
	path   string
	logger *slog.Logger
}

// NewManager creates a manager persisting the token at path. A nil
// logger discards.
func NewManager(client *api.Client, store *Store, path string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{client: client, store: store, path: path, logger: logger}
}

// Store returns the session store the manager mutates.
func (manager *Manager) Store() *Store {
	return manager.store
}

// Restore attempts to resume a persisted session at startup. A stale
// or missing token is silently discarded: the caller proceeds logged
// out either way, so Restore never returns an error.
func (manager *Manager) Restore(ctx context.Context) {
	token, err := LoadToken(manager.path)
	if err != nil {
		manager.logger.Debug("session file unreadable, starting logged out", "error", err)
		return
	}
	if token == "" {
		return
	}

	manager.store.adoptToken(token)
	user, err := manager.client.MeQuiet(ctx)
	if err != nil {
		manager.logger.Debug("persisted token rejected, starting logged out", "error", err)
		manager.store.clearQuiet()
		if removeErr := RemoveToken(manager.path); removeErr != nil {
			manager.logger.Debug("removing stale session file", "error", removeErr)
		}
		return
	}

	manager.store.Set(sessionFromUser(user, token))
	manager.logger.Debug("session restored", "username", user.Username, "role", user.Role)
}

// Login authenticates and installs the resulting session. The
// password is checked locally first so obviously invalid input never
// reaches the network.
func (manager *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	response, err := manager.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if response.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}

	session := sessionFromLogin(response, username)
	if err := SaveToken(manager.path, response.AccessToken); err != nil {
		manager.logger.Warn("session will not survive restart", "error", err)
	}
	manager.store.Set(session)
	return session, nil
}

// Register creates an account and, when the service returns a token,
// signs the new user in immediately.
func (manager *Manager) Register(ctx context.Context, request api.RegisterRequest) (*Session, error) {
	if err := ValidateUsername(request.Username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(request.Email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(request.Password); err != nil {
		return nil, err
	}

	response, err := manager.client.Register(ctx, request)
	if err != nil {
		return nil, err
	}
	if response.AccessToken == "" {
		// Account created but no auto-login; the caller prompts for
		// an explicit login.
		return nil, nil
	}

	session := sessionFromLogin(response, request.Username)
	if err := SaveToken(manager.path, response.AccessToken); err != nil {
		manager.logger.Warn("session will not survive restart", "error", err)
	}
	manager.store.Set(session)
	return session, nil
}

// Logout clears the local session first, then tells the backend to
// invalidate the token. A backend failure is logged and ignored: the
// local state is already gone, which is what the user asked for.
func (manager *Manager) Logout(ctx context.Context) {
	token := manager.store.Token()

	if err := RemoveToken(manager.path); err != nil {
		manager.logger.Warn("removing session file", "error", err)
	}
	manager.store.Clear()

	if token == "" {
		return
	}
	if err := manager.client.LogoutToken(ctx, token); err != nil {
		manager.logger.Debug("backend logout failed, token invalidated locally only", "error", err)
	}
}

// Expire clears local state after the backend rejected the token.
// Unlike Logout it does not call the backend: the token is already
// dead there.
func (manager *Manager) Expire() {
	if err := RemoveToken(manager.path); err != nil {
		manager.logger.Warn("removing session file", "error", err)
	}
	manager.store.Clear()
}

// sessionFromLogin builds a session from a login response, preferring
// the embedded user object and falling back to token claims.
func sessionFromLogin(response *api.LoginResponse, username string) *Session {
	if response.User != nil {
		return sessionFromUser(response.User, response.AccessToken)
	}

	session := &Session{Username: username, Token: response.AccessToken}
	claims, err := DecodeClaims(response.AccessToken)
	if err != nil {
		return session
	}
	if claims.UserID != 0 {
		session.UserID = claims.UserID
	}
	if claims.Username != "" {
		session.Username = claims.Username
	}
	session.Role = claims.Role
	return session
}

func sessionFromUser(user *api.User, token string) *Session {
	return &Session{
		UserID:    user.UserID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		Token:     token,
	}
}
