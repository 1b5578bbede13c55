// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/velvet-club/velvet/lib/access"
	"github.com/velvet-club/velvet/lib/session"
)

// pageReadyMsg delivers the result of an asynchronous page load. The
// sequence ties the result to the navigation that requested it;
// results from superseded navigations are dropped.
type pageReadyMsg struct {
	sequence uint64
	page     access.Page
	loaded   pageModel
	err      error
}

// routeRetryMsg re-attempts a navigation that found the route table
// empty. Attempts are bounded; see maxRouteRetries.
type routeRetryMsg struct {
	page    access.Page
	attempt int
}

// noticeMsg displays a transient message in the status line.
type noticeMsg struct {
	text  string
	level noticeLevel
}

// noticeFadeMsg clears the status line notice with the matching ID.
// The ID guards against an old fade timer clearing a newer notice.
type noticeFadeMsg struct {
	id uint64
}

// sessionChangedMsg is delivered when the session store changes
// (login, logout, expiry). A nil session means logged out.
type sessionChangedMsg struct {
	session *session.Session
}

// unauthorizedMsg is delivered when the backend rejected the bearer
// token on a non-authentication endpoint.
type unauthorizedMsg struct{}

// actionDoneMsg delivers the result of an asynchronous mutation
// (booking, payment, profile save). Failures surface through the
// client's notifier, so err here only suppresses the success path.
type actionDoneMsg struct {
	notice string
	err    error
	reload bool
}

// noticeLevel selects status line styling.
type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

// noticeFadeDelay is how long status line notices stay visible.
const noticeFadeDelay = 5 * time.Second

// fadeAfter schedules a noticeFadeMsg for the given notice ID.
func fadeAfter(id uint64) tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{id: id}
	})
}
