// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "context"

// Profile returns the caller's full profile.
func (client *Client) Profile(ctx context.Context) (*Profile, error) {
	var result Profile
	if err := client.get(ctx, "/profile", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProfileRequest carries the editable profile fields. Empty
// fields are omitted so the service treats them as "unchanged".
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

// UpdateProfile updates the caller's contact fields.
func (client *Client) UpdateProfile(ctx context.Context, request UpdateProfileRequest) (*Profile, error) {
	var result Profile
	if err := client.put(ctx, "/profile", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChangePasswordRequest is the JSON body for the password change
// endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword replaces the caller's password after verifying the
// current one server-side.
func (client *Client) ChangePassword(ctx context.Context, current, next string) error {
	request := ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	return client.post(ctx, "/profile/change-password", request, nil)
}
