// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the client-side record of the authenticated
// identity: who is logged in, with what role, under what credential
// token.
//
// At most one session exists per process. The credential token is the
// only artifact that survives restarts — it is written to a 0600 file
// under the user's config directory, and everything else (user ID,
// username, role) is reconstructed at startup from the token's
// unverified claims plus a profile fetch against the backend.
//
// The [Manager] owns the session lifecycle (restore, login, logout,
// register) and performs the client-side form validation the service
// also enforces, so obviously bad input never reaches the network.
package session
