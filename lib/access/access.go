// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package access holds the client-side authorization policy: which
// pages and actions each role may reach. The backend enforces the
// same rules; these checks only shape the UI so users never see
// controls they cannot use.
package access

import (
	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

// Page names the navigable surfaces of the client.
type Page string

const (
	PageEvents     Page = "events"
	PageMyBookings Page = "my-bookings"
	PageProfile    Page = "profile"
	PageAdmin      Page = "admin"
)

// Pages lists every known page in display order.
var Pages = []Page{PageEvents, PageMyBookings, PageProfile, PageAdmin}

// Known reports whether the page name is one the client can render.
func Known(page Page) bool {
	switch page {
	case PageEvents, PageMyBookings, PageProfile, PageAdmin:
		return true
	}
	return false
}

// Allowed reports whether the session may open the page. A nil
// session is an anonymous visitor. Unknown pages are never allowed.
func Allowed(page Page, current *session.Session) bool {
	switch page {
	case PageEvents:
		return true
	case PageMyBookings, PageProfile:
		return current != nil
	case PageAdmin:
		return current != nil && (current.Role == api.RoleModerator || current.Role == api.RoleAdmin)
	}
	return false
}

// Visible returns the pages the session may open, in display order.
// The navigation bar renders exactly this list.
func Visible(current *session.Session) []Page {
	visible := make([]Page, 0, len(Pages))
	for _, page := range Pages {
		if Allowed(page, current) {
			visible = append(visible, page)
		}
	}
	return visible
}

// CanManageEvents reports whether the session may create, edit,
// delete, or change the status of events.
func CanManageEvents(current *session.Session) bool {
	return current != nil && (current.Role == api.RoleModerator || current.Role == api.RoleAdmin)
}

// CanViewUsers reports whether the session may list user accounts.
// The backend serves the user list to moderators and admins alike.
func CanViewUsers(current *session.Session) bool {
	return current != nil && (current.Role == api.RoleModerator || current.Role == api.RoleAdmin)
}

// CanManageUsers reports whether the session may edit user accounts.
// Moderators see the user list but mutations need the admin role.
func CanManageUsers(current *session.Session) bool {
	return current != nil && current.Role == api.RoleAdmin
}

// CanModifyUser reports whether the session may change the given
// account. Admins may edit anyone but themselves — self-demotion and
// self-deactivation would lock the last admin out.
func CanModifyUser(current *session.Session, userID int64) bool {
	if !CanManageUsers(current) {
		return false
	}
	return current.UserID != userID
}

// CanViewAuditLogs reports whether the session may read the audit
// log.
func CanViewAuditLogs(current *session.Session) bool {
	return current != nil && current.Role == api.RoleAdmin
}

// CanViewSystemHealth reports whether the session may read the
// system health panel.
func CanViewSystemHealth(current *session.Session) bool {
	return current != nil && current.Role == api.RoleAdmin
}
