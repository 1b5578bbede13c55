// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/velvet-club/velvet/lib/access"
	"github.com/velvet-club/velvet/lib/session"
)

// accessDeniedNotice is shown when navigation targets a page the
// current session may not open.
const accessDeniedNotice = "Нет доступа"

// Route table retry bounds. A navigation that finds the table empty
// (registration still in flight at startup) retries a few times
// before giving up with the placeholder page.
const (
	maxRouteRetries = 3
	routeRetryDelay = 100 * time.Millisecond
)

// PageLoader fetches a page's data and returns its ready sub-model.
// Loaders run inside tea.Cmd goroutines, never on the event loop.
type PageLoader func(ctx context.Context) (pageModel, error)

// RouteTable maps page names to their loaders.
type RouteTable map[access.Page]PageLoader

// Router decides where navigation requests land and serializes page
// loads. It is owned by the root model and mutated only on the
// bubbletea event loop.
type Router struct {
	routes RouteTable

	// sequence identifies the most recent navigation. Page load
	// results carrying an older sequence are dropped.
	sequence uint64

	// current is the page being displayed (or loaded).
	current access.Page

	// history is the back stack of previously displayed pages.
	history []access.Page
}

// NewRouter creates a router over the given table.
func NewRouter(routes RouteTable) *Router {
	return &Router{routes: routes}
}

// navigationOutcome reports what a Navigate call decided.
type navigationOutcome int

const (
	// navigationLoad means a page load was issued.
	navigationLoad navigationOutcome = iota
	// navigationDenied means policy rejected the target; nothing
	// changed.
	navigationDenied
	// navigationRetry means the route table was empty and a retry
	// was scheduled.
	navigationRetry
	// navigationFailed means the route table stayed empty through
	// every retry; the caller shows the placeholder.
	navigationFailed
)

// resolve maps a requested page to the page that will actually open.
// Unknown pages fall back to events. The second result reports
// whether policy allows the session to open the resolved page.
func resolve(page access.Page, current *session.Session) (access.Page, bool) {
	if !access.Known(page) {
		page = access.PageEvents
	}
	return page, access.Allowed(page, current)
}

// Navigate requests a page change. Denied and unknown targets follow
// the policy in [resolve]; allowed targets get an asynchronous load
// tied to a fresh sequence number. pushHistory records the previous
// page on the back stack (false for back-navigation itself and for
// reloads).
func (router *Router) Navigate(ctx context.Context, page access.Page, current *session.Session, pushHistory bool) (navigationOutcome, tea.Cmd) {
	target, allowed := resolve(page, current)
	if !allowed {
		return navigationDenied, nil
	}
	return router.load(ctx, target, 0, pushHistory)
}

// Reload re-issues the current page's loader without touching the
// back stack.
func (router *Router) Reload(ctx context.Context) (navigationOutcome, tea.Cmd) {
	if router.current == "" {
		return navigationFailed, nil
	}
	return router.load(ctx, router.current, 0, false)
}

// Back pops the back stack and navigates to the previous page. The
// popped page is not re-validated against policy here: Navigate
// handles denial, and a denial leaves the view unchanged.
func (router *Router) Back(ctx context.Context, current *session.Session) (navigationOutcome, tea.Cmd) {
	if len(router.history) == 0 {
		return navigationDenied, nil
	}
	previous := router.history[len(router.history)-1]
	router.history = router.history[:len(router.history)-1]

	target, allowed := resolve(previous, current)
	if !allowed {
		return navigationDenied, nil
	}
	return router.load(ctx, target, 0, false)
}

func (router *Router) load(ctx context.Context, page access.Page, attempt int, pushHistory bool) (navigationOutcome, tea.Cmd) {
	loader, registered := router.routes[page]
	if !registered {
		if attempt >= maxRouteRetries {
			return navigationFailed, nil
		}
		next := attempt + 1
		return navigationRetry, tea.Tick(routeRetryDelay, func(time.Time) tea.Msg {
			return routeRetryMsg{page: page, attempt: next}
		})
	}

	if pushHistory && router.current != "" && router.current != page {
		router.history = append(router.history, router.current)
	}
	router.current = page
	router.sequence++
	sequence := router.sequence

	return navigationLoad, func() tea.Msg {
		loaded, err := loader(ctx)
		return pageReadyMsg{sequence: sequence, page: page, loaded: loaded, err: err}
	}
}

// retry continues a navigation deferred by an empty route table.
func (router *Router) retry(ctx context.Context, message routeRetryMsg) (navigationOutcome, tea.Cmd) {
	return router.load(ctx, message.page, message.attempt, true)
}

// Stale reports whether a page load result belongs to a superseded
// navigation.
func (router *Router) Stale(message pageReadyMsg) bool {
	return message.sequence != router.sequence
}

// Current returns the page being displayed or loaded.
func (router *Router) Current() access.Page {
	return router.current
}

// InitialPage derives the startup page from a command-line or config
// value. Unknown values open events.
func InitialPage(name string) access.Page {
	page := access.Page(name)
	if !access.Known(page) {
		return access.PageEvents
	}
	return page
}
