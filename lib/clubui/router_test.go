// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

// stubPage is a minimal pageModel for router tests.
type stubPage struct {
	name string
}

func (page stubPage) title() string { return page.name }
func (page stubPage) update(tea.Msg, KeyMap) (pageModel, tea.Cmd) {
	return page, nil
}
func (page stubPage) view(Theme, int, int) string { return page.name }

func stubLoader(name string, err error) PageLoader {
	return func(context.Context) (pageModel, error) {
		if err != nil {
			return nil, err
		}
		return stubPage{name: name}, nil
	}
}

func stubRoutes() RouteTable {
	return RouteTable{
		"events":      stubLoader("events", nil),
		"my-bookings": stubLoader("my-bookings", nil),
		"profile":     stubLoader("profile", nil),
		"admin":       stubLoader("admin", nil),
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	admin := &session.Session{UserID: 1, Role: api.RoleAdmin}

	page, allowed := resolve("settings", admin)
	if page != "events" || !allowed {
		t.Errorf("resolve(settings) = %q, %v; want events page fallback", page, allowed)
	}

	page, allowed = resolve("admin", nil)
	if page != "admin" || allowed {
		t.Errorf("resolve(admin, anonymous) = %q, %v; want denial without fallback", page, allowed)
	}

	if _, allowed := resolve("my-bookings", admin); !allowed {
		t.Error("resolve(my-bookings, admin) denied")
	}
}

func TestNavigateDeniedChangesNothing(t *testing.T) {
	t.Parallel()

	router := NewRouter(stubRoutes())
	if _, cmd := router.Navigate(context.Background(), "events", nil, false); cmd == nil {
		t.Fatal("initial events navigation produced no load")
	}
	sequenceBefore := router.sequence

	outcome, cmd := router.Navigate(context.Background(), "admin", nil, true)
	if outcome != navigationDenied {
		t.Errorf("outcome = %v, want denied", outcome)
	}
	if cmd != nil {
		t.Error("denied navigation produced a command")
	}
	if router.Current() != "events" {
		t.Errorf("current page = %q, want events", router.Current())
	}
	if router.sequence != sequenceBefore {
		t.Error("denied navigation advanced the load sequence")
	}
	if len(router.history) != 0 {
		t.Error("denied navigation touched the back stack")
	}
}

func TestNavigateLoadsAndDeliversResult(t *testing.T) {
	t.Parallel()

	router := NewRouter(stubRoutes())
	outcome, cmd := router.Navigate(context.Background(), "events", nil, false)
	if outcome != navigationLoad || cmd == nil {
		t.Fatalf("outcome = %v, cmd nil = %v", outcome, cmd == nil)
	}

	message, isReady := cmd().(pageReadyMsg)
	if !isReady {
		t.Fatal("command did not produce a pageReadyMsg")
	}
	if router.Stale(message) {
		t.Error("fresh result reported stale")
	}
	if message.loaded.title() != "events" {
		t.Errorf("loaded page = %q", message.loaded.title())
	}
}

func TestStaleResultDropped(t *testing.T) {
	t.Parallel()

	admin := &session.Session{UserID: 1, Role: api.RoleAdmin}
	router := NewRouter(stubRoutes())

	_, firstCmd := router.Navigate(context.Background(), "events", admin, false)
	_, secondCmd := router.Navigate(context.Background(), "profile", admin, true)

	firstResult := firstCmd().(pageReadyMsg)
	secondResult := secondCmd().(pageReadyMsg)

	if !router.Stale(firstResult) {
		t.Error("superseded result not reported stale")
	}
	if router.Stale(secondResult) {
		t.Error("latest result reported stale")
	}
}

func TestEmptyRouteTableRetriesThenFails(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouteTable{})
	outcome, cmd := router.Navigate(context.Background(), "events", nil, false)
	if outcome != navigationRetry || cmd == nil {
		t.Fatalf("first attempt: outcome = %v", outcome)
	}

	// Walk the retry chain to its bound.
	attempts := 0
	for outcome == navigationRetry {
		attempts++
		if attempts > maxRouteRetries+1 {
			t.Fatal("retry chain did not terminate")
		}
		retryMessage := routeRetryMsg{page: "events", attempt: attempts}
		outcome, cmd = router.retry(context.Background(), retryMessage)
	}
	if outcome != navigationFailed {
		t.Errorf("final outcome = %v, want failed", outcome)
	}
	if cmd != nil {
		t.Error("failed navigation still produced a command")
	}
}

func TestBackPopsHistory(t *testing.T) {
	t.Parallel()

	admin := &session.Session{UserID: 1, Role: api.RoleAdmin}
	router := NewRouter(stubRoutes())

	router.Navigate(context.Background(), "events", admin, false)
	router.Navigate(context.Background(), "profile", admin, true)
	router.Navigate(context.Background(), "admin", admin, true)

	outcome, cmd := router.Back(context.Background(), admin)
	if outcome != navigationLoad || cmd == nil {
		t.Fatalf("back outcome = %v", outcome)
	}
	if router.Current() != "profile" {
		t.Errorf("current after back = %q, want profile", router.Current())
	}

	router.Back(context.Background(), admin)
	if router.Current() != "events" {
		t.Errorf("current after second back = %q, want events", router.Current())
	}

	// Empty stack: back is a no-op.
	if outcome, _ := router.Back(context.Background(), admin); outcome != navigationDenied {
		t.Errorf("back on empty stack = %v", outcome)
	}
}

func TestBackRespectsPolicyAfterLogout(t *testing.T) {
	t.Parallel()

	admin := &session.Session{UserID: 1, Role: api.RoleAdmin}
	router := NewRouter(stubRoutes())

	router.Navigate(context.Background(), "admin", admin, false)
	router.Navigate(context.Background(), "events", admin, true)

	// Logged out now; back would land on admin, which policy denies.
	outcome, cmd := router.Back(context.Background(), nil)
	if outcome != navigationDenied || cmd != nil {
		t.Errorf("back to denied page: outcome = %v", outcome)
	}
	if router.Current() != "events" {
		t.Errorf("current = %q, want events unchanged", router.Current())
	}
}

func TestLoaderErrorPropagates(t *testing.T) {
	t.Parallel()

	loadFailure := errors.New("service unavailable")
	router := NewRouter(RouteTable{"events": stubLoader("events", loadFailure)})

	_, cmd := router.Navigate(context.Background(), "events", nil, false)
	message := cmd().(pageReadyMsg)
	if !errors.Is(message.err, loadFailure) {
		t.Errorf("err = %v, want the loader failure", message.err)
	}
	if message.loaded != nil {
		t.Error("failed load still returned a page")
	}
}

func TestInitialPage(t *testing.T) {
	t.Parallel()

	if page := InitialPage("my-bookings"); page != "my-bookings" {
		t.Errorf("InitialPage(my-bookings) = %q", page)
	}
	if page := InitialPage("does-not-exist"); page != "events" {
		t.Errorf("InitialPage(unknown) = %q, want events", page)
	}
	if page := InitialPage(""); page != "events" {
		t.Errorf("InitialPage(empty) = %q, want events", page)
	}
}
