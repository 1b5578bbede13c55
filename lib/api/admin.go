// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AdminUsers lists all users with activity stats. Requires moderator
// or admin role.
func (client *Client) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	var result []AdminUser
	if err := client.get(ctx, "/admin/users", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateUserRequest carries the mutable user fields for the admin
// user-management endpoint. Nil pointers mean "unchanged".
type UpdateUserRequest struct {
	Role     *Role `json:"role,omitempty"`
	IsActive *bool `json:"is_active,omitempty"`
}

// UpdateUser changes a user's role or active status. Admin only;
// the service rejects self-demotion.
func (client *Client) UpdateUser(ctx context.Context, userID int64, request UpdateUserRequest) (*User, error) {
	var result User
	if err := client.put(ctx, fmt.Sprintf("/admin/users/%d", userID), request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AdminStats returns the admin dashboard statistics. Requires
// moderator or admin role.
func (client *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var result AdminStats
	if err := client.get(ctx, "/admin/stats", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AuditLogFilter narrows and pages the audit log listing. Zero values
// are omitted from the query string.
type AuditLogFilter struct {
	Limit     int
	Offset    int
	StartDate string
	EndDate   string
	Action    string
}

// query encodes the filter as URL query parameters.
func (filter AuditLogFilter) query() string {
	values := url.Values{}
	if filter.Limit > 0 {
		values.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		values.Set("offset", strconv.Itoa(filter.Offset))
	}
	if filter.StartDate != "" {
		values.Set("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		values.Set("end_date", filter.EndDate)
	}
	if filter.Action != "" {
		values.Set("action", filter.Action)
	}
	if encoded := values.Encode(); encoded != "" {
		return "?" + encoded
	}
	return ""
}

// AuditLogs returns audit trail entries matching the filter, newest
// first. Admin only.
func (client *Client) AuditLogs(ctx context.Context, filter AuditLogFilter) ([]AuditLogEntry, error) {
	var result []AuditLogEntry
	if err := client.get(ctx, "/admin/logs"+filter.query(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// SystemHealth returns the service health report. Admin only.
func (client *Client) SystemHealth(ctx context.Context) (*SystemHealth, error) {
	var result SystemHealth
	if err := client.get(ctx, "/admin/system-health", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
