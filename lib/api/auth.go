// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "context"

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the wire format for a successful login. The user
// object is optional — older service versions return only the token,
// and the client reconstructs identity from the token claims plus a
// follow-up Me call.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        *User  `json:"user,omitempty"`
	CSRFToken   string `json:"csrf_token,omitempty"`
}

// Login exchanges credentials for an access token.
func (client *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var result LoginResponse
	err := client.post(ctx, "/auth/login", LoginRequest{Username: username, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Register creates a new account. The service returns the same shape
// as login so freshly registered users are signed in immediately.
func (client *Client) Register(ctx context.Context, request RegisterRequest) (*LoginResponse, error) {
	var result LoginResponse
	if err := client.post(ctx, "/auth/register", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the current token server-side. Callers clear
// local session state regardless of the outcome.
func (client *Client) Logout(ctx context.Context) error {
	return client.post(ctx, "/auth/logout", nil, nil)
}

// LogoutToken is Logout with an explicit bearer token. The session
// manager clears local state before informing the backend, so the
// token to invalidate is no longer available from the token source.
func (client *Client) LogoutToken(ctx context.Context, token string) error {
	return client.request(ctx, "POST", "/auth/logout", nil, nil, requestOptions{bearer: token})
}

// Me returns the authenticated user's account. Doubles as the token
// validation probe at startup.
func (client *Client) Me(ctx context.Context) (*User, error) {
	var result User
	if err := client.get(ctx, "/auth/me", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MeQuiet is Me with notifications suppressed, for the startup session
// probe: a failure there means "not logged in", not a fault worth a
// toast.
func (client *Client) MeQuiet(ctx context.Context) (*User, error) {
	var result User
	err := client.request(ctx, "GET", "/auth/me", nil, &result, requestOptions{quiet: true})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
