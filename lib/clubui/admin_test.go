// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

// rewriteTransport redirects requests to the test server.
type rewriteTransport struct {
	server *httptest.Server
}

func (transport *rewriteTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	request.URL.Scheme = "http"
	request.URL.Host = transport.server.Listener.Addr().String()
	return http.DefaultTransport.RoundTrip(request)
}

// adminBackend is a stub admin API that records which endpoints were
// requested.
type adminBackend struct {
	mu        sync.Mutex
	requested map[string]bool
}

func (backend *adminBackend) handler(t *testing.T) http.Handler {
	t.Helper()
	respond := func(writer http.ResponseWriter, body any) {
		writer.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(writer).Encode(body); err != nil {
			t.Errorf("encoding response: %v", err)
		}
	}

	mux := http.NewServeMux()
	record := func(path string, body func() any) {
		mux.HandleFunc("GET "+path, func(writer http.ResponseWriter, request *http.Request) {
			backend.mu.Lock()
			backend.requested[request.URL.Path] = true
			backend.mu.Unlock()
			respond(writer, body())
		})
	}
	record("/api/v1/admin/stats", func() any {
		return api.AdminStats{Overall: api.OverallStats{TotalUsers: 2}}
	})
	record("/api/v1/admin/users", func() any {
		return []api.AdminUser{
			{User: api.User{UserID: 1, Username: "alice", Role: api.RoleAdmin, IsActive: true}},
			{User: api.User{UserID: 2, Username: "bob", Role: api.RoleUser, IsActive: true}},
		}
	})
	record("/api/v1/admin/logs", func() any { return []api.AuditLogEntry{} })
	record("/api/v1/admin/system-health", func() any { return api.SystemHealth{Status: "healthy"} })
	return mux
}

func (backend *adminBackend) got(path string) bool {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	return backend.requested[path]
}

func adminDeps(t *testing.T, active *session.Session) (*Deps, *adminBackend) {
	t.Helper()
	backend := &adminBackend{requested: map[string]bool{}}
	server := httptest.NewServer(backend.handler(t))
	t.Cleanup(server.Close)

	store := session.NewStore()
	store.Set(active)
	client := api.New(api.Config{
		ServerURL:  "http://velvet.test",
		Tokens:     store,
		HTTPClient: &http.Client{Transport: &rewriteTransport{server: server}},
	})
	manager := session.NewManager(client, store, filepath.Join(t.TempDir(), "session.json"), nil)
	return &Deps{Client: client, Sessions: manager}, backend
}

func TestModeratorAdminPageIncludesUserList(t *testing.T) {
	t.Parallel()

	moderator := &session.Session{UserID: 7, Username: "mod", Role: api.RoleModerator, Token: "tok"}
	deps, backend := adminDeps(t, moderator)

	loaded, err := loadAdminPage(deps)(context.Background())
	if err != nil {
		t.Fatalf("loading admin page: %v", err)
	}
	page := loaded.(*adminPage)

	if !backend.got("/api/v1/admin/users") {
		t.Error("moderator load never requested the user list")
	}
	if backend.got("/api/v1/admin/logs") {
		t.Error("moderator load requested the audit log")
	}
	if backend.got("/api/v1/admin/system-health") {
		t.Error("moderator load requested system health")
	}

	wantSections := []adminSection{adminStats, adminUsers}
	if len(page.sections) != len(wantSections) {
		t.Fatalf("sections = %v, want %v", page.sections, wantSections)
	}
	for index, section := range wantSections {
		if page.sections[index] != section {
			t.Errorf("sections[%d] = %v, want %v", index, page.sections[index], section)
		}
	}
	if len(page.users) != 2 {
		t.Errorf("got %d users, want 2", len(page.users))
	}

	view := page.view(DefaultTheme, 100, 30)
	if !strings.Contains(view, "Пользователи") {
		t.Error("users tab missing from moderator admin view")
	}
	if strings.Contains(view, "Журнал") || strings.Contains(view, "Система") {
		t.Error("moderator admin view offers admin-only tabs")
	}
}

func TestAdminPageLoadsAllSections(t *testing.T) {
	t.Parallel()

	admin := &session.Session{UserID: 1, Username: "alice", Role: api.RoleAdmin, Token: "tok"}
	deps, backend := adminDeps(t, admin)

	loaded, err := loadAdminPage(deps)(context.Background())
	if err != nil {
		t.Fatalf("loading admin page: %v", err)
	}
	page := loaded.(*adminPage)

	for _, path := range []string{
		"/api/v1/admin/stats",
		"/api/v1/admin/users",
		"/api/v1/admin/logs",
		"/api/v1/admin/system-health",
	} {
		if !backend.got(path) {
			t.Errorf("admin load never requested %s", path)
		}
	}
	if len(page.sections) != 4 {
		t.Errorf("sections = %v, want all four", page.sections)
	}
}
