// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

// testModel builds a root model over stub routes with an in-memory
// session. No network is involved.
func testModel(t *testing.T, routes RouteTable, active *session.Session) Model {
	t.Helper()
	store := session.NewStore()
	if active != nil {
		store.Set(active)
	}
	client := api.New(api.Config{ServerURL: "http://velvet.test", Tokens: store})
	manager := session.NewManager(client, store, filepath.Join(t.TempDir(), "session.json"), nil)

	deps := &Deps{Client: client, Sessions: manager}
	model := NewModelWithRoutes(deps, "events", routes)
	model.width = 100
	model.height = 30
	model.ready = true
	return model
}

// drain runs commands until their messages have been applied,
// following at most limit steps. Batch commands are expanded.
func drain(t *testing.T, model tea.Model, cmd tea.Cmd, limit int) tea.Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < limit; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		message := next()
		if message == nil {
			continue
		}
		if batch, isBatch := message.(tea.BatchMsg); isBatch {
			queue = append(queue, batch...)
			continue
		}
		var follow tea.Cmd
		model, follow = model.Update(message)
		queue = append(queue, follow)
	}
	return model
}

func TestStartupLoadsEvents(t *testing.T) {
	t.Parallel()

	model := testModel(t, stubRoutes(), nil)
	updated := drain(t, model, model.Init(), 10).(Model)

	if updated.page == nil {
		t.Fatal("no page after startup")
	}
	if updated.page.title() != "events" {
		t.Errorf("startup page = %q, want events", updated.page.title())
	}
}

func TestDeniedNavigationLeavesViewUnchanged(t *testing.T) {
	t.Parallel()

	model := testModel(t, stubRoutes(), nil)
	loaded := drain(t, model, model.Init(), 10).(Model)

	updated, _ := loaded.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	after := updated.(Model)

	if after.page.title() != "events" {
		t.Errorf("page after denied navigation = %q, want events", after.page.title())
	}
	if after.notice != accessDeniedNotice {
		t.Errorf("notice = %q, want %q", after.notice, accessDeniedNotice)
	}
}

func TestModeratorReachesAdminPage(t *testing.T) {
	t.Parallel()

	moderator := &session.Session{UserID: 2, Username: "mod", Role: api.RoleModerator}
	model := testModel(t, stubRoutes(), moderator)
	loaded := drain(t, model, model.Init(), 10).(Model)

	updated, cmd := loaded.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	after := drain(t, updated, cmd, 10).(Model)

	if after.page.title() != "admin" {
		t.Errorf("page = %q, want admin", after.page.title())
	}
}

func TestFailingEventsPageShowsPlaceholder(t *testing.T) {
	t.Parallel()

	routes := RouteTable{"events": stubLoader("events", errors.New("boom"))}
	model := testModel(t, routes, nil)
	after := drain(t, model, model.Init(), 10).(Model)

	if !after.placeholder {
		t.Fatal("placeholder not shown after events load failure")
	}
	view := after.View()
	if !strings.Contains(view, "Сервис временно недоступен") {
		t.Error("placeholder text missing from view")
	}
}

func TestFailingPageFallsBackToEventsWithoutRecursion(t *testing.T) {
	t.Parallel()

	user := &session.Session{UserID: 3, Username: "u", Role: api.RoleUser}
	routes := RouteTable{
		"events":      stubLoader("events", errors.New("down")),
		"my-bookings": stubLoader("my-bookings", errors.New("down")),
		"profile":     stubLoader("profile", nil),
		"admin":       stubLoader("admin", nil),
	}
	model := testModel(t, routes, user)
	loaded := drain(t, model, model.Init(), 10).(Model)

	// Events already failed at startup, so we are on the placeholder.
	// Navigating to a page that also fails must end on the
	// placeholder again, not loop.
	updated, cmd := loaded.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	after := drain(t, updated, cmd, 20).(Model)

	if !after.placeholder {
		t.Error("expected placeholder after cascading load failures")
	}
}

func TestUnauthorizedPromptShownExactlyOnce(t *testing.T) {
	t.Parallel()

	user := &session.Session{UserID: 4, Username: "u", Role: api.RoleUser, Token: "tok"}
	model := testModel(t, stubRoutes(), user)
	loaded := drain(t, model, model.Init(), 10).(Model)

	updated, _ := loaded.Update(unauthorizedMsg{})
	first := updated.(Model)
	if first.modal == nil {
		t.Fatal("login modal not opened on token rejection")
	}
	if first.deps.Sessions.Store().LoggedIn() {
		t.Error("session survived token rejection")
	}

	// A second rejection (parallel request failing) must not reset
	// the modal the user may already be typing into.
	first.modal.inputs[fieldUsername].SetValue("typed")
	again, _ := first.Update(unauthorizedMsg{})
	second := again.(Model)
	if second.modal.inputs[fieldUsername].Value() != "typed" {
		t.Error("second rejection replaced the modal")
	}
}

func TestSuccessfulLoginResetsPromptGuard(t *testing.T) {
	t.Parallel()

	user := &session.Session{UserID: 5, Username: "u", Role: api.RoleUser, Token: "tok"}
	model := testModel(t, stubRoutes(), user)
	loaded := drain(t, model, model.Init(), 10).(Model)

	updated, _ := loaded.Update(unauthorizedMsg{})
	expired := updated.(Model)

	result, cmd := expired.Update(authResultMsg{session: user})
	after := drain(t, result, cmd, 10).(Model)

	if after.modal != nil {
		t.Error("modal still open after successful login")
	}
	if after.sessionPromptShown {
		t.Error("prompt guard not reset; the next expiry would be silent")
	}
}

func TestLogoutOnRestrictedPageReturnsToEvents(t *testing.T) {
	t.Parallel()

	user := &session.Session{UserID: 6, Username: "u", Role: api.RoleUser, Token: "tok"}
	model := testModel(t, stubRoutes(), user)
	loaded := drain(t, model, model.Init(), 10).(Model)

	updated, cmd := loaded.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	onProfile := drain(t, updated, cmd, 10).(Model)
	if onProfile.page.title() != "profile" {
		t.Fatalf("page = %q, want profile", onProfile.page.title())
	}

	result, followCmd := onProfile.Update(sessionChangedMsg{session: nil})
	after := drain(t, result, followCmd, 10).(Model)
	if after.page.title() != "events" {
		t.Errorf("page after logout = %q, want events", after.page.title())
	}
}

func TestHeaderOffersOnlyAllowedPages(t *testing.T) {
	t.Parallel()

	model := testModel(t, stubRoutes(), nil)
	loaded := drain(t, model, model.Init(), 10).(Model)

	header := loaded.viewHeader()
	if strings.Contains(header, pageTitle("admin")) {
		t.Error("anonymous header offers the admin page")
	}
	if !strings.Contains(header, pageTitle("events")) {
		t.Error("header misses the events page")
	}
}
