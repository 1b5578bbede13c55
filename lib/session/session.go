// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"sync"

	"github.com/velvet-club/velvet/lib/api"
)

// Session is the in-memory record of the authenticated identity.
type Session struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	Role      api.Role

	// Token is the bearer credential attached to every authenticated
	// request.
	Token string
}

// DisplayName returns the user's full name when profile fields are
// known, falling back to the username.
func (session *Session) DisplayName() string {
	if session == nil {
		return ""
	}
	if session.FirstName != "" || session.LastName != "" {
		name := session.FirstName
		if session.LastName != "" {
			if name != "" {
				name += " "
			}
			name += session.LastName
		}
		return name
	}
	return session.Username
}

// Store holds the current session and fans out change notifications.
// It implements [api.TokenSource], so the API client always sees the
// live token — login and logout take effect on the next request.
//
// The TUI mutates the store only from the bubbletea event loop; the
// mutex exists for the CLI, where command goroutines and the startup
// probe may interleave.
type Store struct {
	mu          sync.Mutex
	session     *Session
	token       string
	subscribers []func(*Session)
}

// NewStore creates an empty store (no session, no token).
func NewStore() *Store {
	return &Store{}
}

// Token implements api.TokenSource. Returns "" when logged out.
func (store *Store) Token() string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.token
}

// Current returns the active session, or nil when logged out. The
// returned value is shared — treat it as read-only.
func (store *Store) Current() *Session {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.session
}

// LoggedIn reports whether a session is active.
func (store *Store) LoggedIn() bool {
	return store.Current() != nil
}

// Set installs a session and notifies subscribers.
func (store *Store) Set(session *Session) {
	store.mu.Lock()
	store.session = session
	store.token = session.Token
	subscribers := append([]func(*Session){}, store.subscribers...)
	store.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(session)
	}
}

// Clear drops the session and token and notifies subscribers with nil.
func (store *Store) Clear() {
	store.mu.Lock()
	store.session = nil
	store.token = ""
	subscribers := append([]func(*Session){}, store.subscribers...)
	store.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(nil)
	}
}

// Subscribe registers a callback invoked after every session change
// (login, logout, refresh). Callbacks run on the mutating goroutine.
func (store *Store) Subscribe(callback func(*Session)) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.subscribers = append(store.subscribers, callback)
}

// adoptToken installs a token without a session and without notifying.
// The restore probe uses this so the validation request can
// authenticate before any session exists.
func (store *Store) adoptToken(token string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.token = token
}

// clearQuiet drops session state without notifying. Used when the
// restore probe fails: the observable state never left "logged out".
func (store *Store) clearQuiet() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.session = nil
	store.token = ""
}
