// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"reflect"
	"testing"

	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

func sessionWithRole(role api.Role) *session.Session {
	return &session.Session{UserID: 1, Username: "tester", Role: role}
}

func TestAllowed(t *testing.T) {
	t.Parallel()

	anonymous := (*session.Session)(nil)
	user := sessionWithRole(api.RoleUser)
	moderator := sessionWithRole(api.RoleModerator)
	admin := sessionWithRole(api.RoleAdmin)

	tests := []struct {
		name    string
		page    Page
		current *session.Session
		want    bool
	}{
		{"events anonymous", PageEvents, anonymous, true},
		{"events user", PageEvents, user, true},
		{"bookings anonymous", PageMyBookings, anonymous, false},
		{"bookings user", PageMyBookings, user, true},
		{"profile anonymous", PageProfile, anonymous, false},
		{"profile user", PageProfile, user, true},
		{"admin anonymous", PageAdmin, anonymous, false},
		{"admin user", PageAdmin, user, false},
		{"admin moderator", PageAdmin, moderator, true},
		{"admin admin", PageAdmin, admin, true},
		{"unknown page admin", Page("settings"), admin, false},
		{"empty page", Page(""), admin, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := Allowed(test.page, test.current); got != test.want {
				t.Errorf("Allowed(%q) = %v, want %v", test.page, got, test.want)
			}
		})
	}
}

func TestVisible(t *testing.T) {
	t.Parallel()

	if got := Visible(nil); !reflect.DeepEqual(got, []Page{PageEvents}) {
		t.Errorf("Visible(anonymous) = %v", got)
	}
	user := Visible(sessionWithRole(api.RoleUser))
	if !reflect.DeepEqual(user, []Page{PageEvents, PageMyBookings, PageProfile}) {
		t.Errorf("Visible(user) = %v", user)
	}
	moderator := Visible(sessionWithRole(api.RoleModerator))
	if !reflect.DeepEqual(moderator, []Page{PageEvents, PageMyBookings, PageProfile, PageAdmin}) {
		t.Errorf("Visible(moderator) = %v", moderator)
	}
}

func TestAdminOnlyCapabilities(t *testing.T) {
	t.Parallel()

	moderator := sessionWithRole(api.RoleModerator)
	admin := sessionWithRole(api.RoleAdmin)

	if !CanManageEvents(moderator) {
		t.Error("moderator cannot manage events")
	}
	if !CanViewUsers(moderator) {
		t.Error("moderator cannot view the user list")
	}
	if CanViewUsers(sessionWithRole(api.RoleUser)) {
		t.Error("regular user can view the user list")
	}
	if CanManageUsers(moderator) {
		t.Error("moderator can manage users")
	}
	if CanViewAuditLogs(moderator) {
		t.Error("moderator can view audit logs")
	}
	if CanViewSystemHealth(moderator) {
		t.Error("moderator can view system health")
	}
	if !CanManageUsers(admin) || !CanViewAuditLogs(admin) || !CanViewSystemHealth(admin) {
		t.Error("admin missing an admin capability")
	}
}

func TestCanModifyUserExcludesSelf(t *testing.T) {
	t.Parallel()

	admin := sessionWithRole(api.RoleAdmin) // UserID 1
	if CanModifyUser(admin, 1) {
		t.Error("admin may modify their own account")
	}
	if !CanModifyUser(admin, 2) {
		t.Error("admin may not modify another account")
	}
	if CanModifyUser(nil, 2) {
		t.Error("anonymous may modify accounts")
	}
}
