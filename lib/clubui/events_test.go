// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

// statusBackend records the status transition the page submits.
type statusBackend struct {
	mu     sync.Mutex
	path   string
	status string
}

func (backend *statusBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/v1/events/{id}/status", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			http.Error(writer, err.Error(), http.StatusBadRequest)
			return
		}
		backend.mu.Lock()
		backend.path = request.URL.Path
		backend.status = body.Status
		backend.mu.Unlock()
		writer.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func eventsDeps(t *testing.T, active *session.Session, handler http.Handler) *Deps {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewStore()
	store.Set(active)
	client := api.New(api.Config{
		ServerURL:  "http://velvet.test",
		Tokens:     store,
		HTTPClient: &http.Client{Transport: &rewriteTransport{server: server}},
	})
	manager := session.NewManager(client, store, filepath.Join(t.TempDir(), "session.json"), nil)
	return &Deps{Client: client, Sessions: manager}
}

func TestManagerStatusPickerSubmitsTransition(t *testing.T) {
	t.Parallel()

	backend := &statusBackend{}
	moderator := &session.Session{UserID: 3, Username: "mod", Role: api.RoleModerator, Token: "tok"}
	page := &eventsPage{
		deps:   eventsDeps(t, moderator, backend.handler()),
		detail: &api.Event{EventID: 5, Title: "Джазовый вечер", Status: api.EventPlanned},
	}

	updated, _ := page.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, DefaultKeyMap)
	page = updated.(*eventsPage)
	if page.dropdown == nil {
		t.Fatal("status picker did not open for a moderator")
	}
	if got := len(page.dropdown.Options); got != 3 {
		t.Fatalf("picker options = %d, want 3", got)
	}

	updated, _ = page.update(tea.KeyMsg{Type: tea.KeyDown}, DefaultKeyMap)
	page = updated.(*eventsPage)
	updated, cmd := page.update(tea.KeyMsg{Type: tea.KeyEnter}, DefaultKeyMap)
	page = updated.(*eventsPage)
	if page.dropdown != nil {
		t.Error("picker still open after selection")
	}
	if cmd == nil {
		t.Fatal("selection produced no command")
	}

	done, isDone := cmd().(actionDoneMsg)
	if !isDone {
		t.Fatal("status command did not produce an action result")
	}
	if done.err != nil {
		t.Fatalf("status transition failed: %v", done.err)
	}
	if !done.reload {
		t.Error("status transition did not request a reload")
	}
	if backend.path != "/api/v1/events/5/status" {
		t.Errorf("request path = %q, want /api/v1/events/5/status", backend.path)
	}
	if backend.status != api.EventActive {
		t.Errorf("submitted status = %q, want %q", backend.status, api.EventActive)
	}
}

func TestStatusPickerUnavailableToRegularUsers(t *testing.T) {
	t.Parallel()

	user := &session.Session{UserID: 4, Username: "guest", Role: api.RoleUser, Token: "tok"}
	page := &eventsPage{
		deps:   eventsDeps(t, user, http.NewServeMux()),
		detail: &api.Event{EventID: 5, Title: "Джазовый вечер", Status: api.EventPlanned},
	}

	updated, cmd := page.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, DefaultKeyMap)
	page = updated.(*eventsPage)
	if page.dropdown != nil {
		t.Error("status picker opened for a regular user")
	}
	if cmd != nil {
		t.Error("key produced a command for a regular user")
	}
}

func TestBackspaceClosesDetailInsteadOfNavigating(t *testing.T) {
	t.Parallel()

	model := testModel(t, stubRoutes(), nil)
	loaded := drain(t, model, model.Init(), 10).(Model)
	loaded.page = &eventsPage{
		deps:   loaded.deps,
		detail: &api.Event{EventID: 5, Title: "Джазовый вечер"},
	}

	updated, _ := loaded.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	after := updated.(Model)

	page, isEvents := after.page.(*eventsPage)
	if !isEvents {
		t.Fatalf("page after backspace is %T, want *eventsPage", after.page)
	}
	if page.detail != nil {
		t.Error("detail view still open after backspace")
	}
	if after.loading {
		t.Error("backspace triggered a history navigation")
	}
}
