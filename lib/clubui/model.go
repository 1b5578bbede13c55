// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/velvet-club/velvet/lib/access"
	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

// Deps bundles what every page needs: the API client, the session
// manager, and a logger. Pages hold the pointer and never copy it.
type Deps struct {
	Client   *api.Client
	Sessions *session.Manager
	Logger   *slog.Logger
}

// pageModel is one page of the client: events, my-bookings, profile,
// or admin. Page models are constructed fully loaded by their
// [PageLoader] and then receive messages from the root model.
type pageModel interface {
	title() string
	update(message tea.Msg, keys KeyMap) (pageModel, tea.Cmd)
	view(theme Theme, width, height int) string
}

// Model is the top-level bubbletea model for the club viewer.
type Model struct {
	deps   *Deps
	theme  Theme
	keys   KeyMap
	router *Router

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// startPage is the page requested at launch; loaded by Init.
	startPage access.Page

	// page is the active page's sub-model; nil while the first load
	// is in flight. loading is true while any load is in flight.
	page    pageModel
	loading bool

	// placeholder is true when the events page itself failed to load
	// and the static fallback is shown. No automatic reload happens
	// from the placeholder; the user retries with r.
	placeholder bool

	// Status line notice.
	notice     string
	noticeKind noticeLevel
	noticeID   uint64

	// modal is the login/register form; non-nil while open.
	modal *authModal

	// sessionPromptShown dedups the login prompt after a backend
	// token rejection: many in-flight requests can fail with 401 at
	// once, and the user should be asked to log in exactly once.
	// Reset on successful login.
	sessionPromptShown bool
}

// NewModel creates the root model with the standard route table.
func NewModel(deps *Deps, startPage access.Page) Model {
	routes := RouteTable{
		access.PageEvents:     loadEventsPage(deps),
		access.PageMyBookings: loadBookingsPage(deps),
		access.PageProfile:    loadProfilePage(deps),
		access.PageAdmin:      loadAdminPage(deps),
	}
	return NewModelWithRoutes(deps, startPage, routes)
}

// NewModelWithRoutes creates the root model over an explicit route
// table.
func NewModelWithRoutes(deps *Deps, startPage access.Page, routes RouteTable) Model {
	return Model{
		deps:      deps,
		theme:     DefaultTheme,
		keys:      DefaultKeyMap,
		router:    NewRouter(routes),
		startPage: startPage,
	}
}

// SessionChanged wraps a session store change for delivery through
// program.Send. Wire it to the store subscription:
//
//	store.Subscribe(func(s *session.Session) { program.Send(clubui.SessionChanged(s)) })
func SessionChanged(active *session.Session) tea.Msg {
	return sessionChangedMsg{session: active}
}

// Init implements tea.Model: loads the startup page. A denied startup
// page (for example --page admin while logged out) silently opens
// events instead.
func (model Model) Init() tea.Cmd {
	current := model.deps.Sessions.Store().Current()
	target, allowed := resolve(model.startPage, current)
	if !allowed {
		target = access.PageEvents
	}
	_, cmd := model.router.Navigate(context.Background(), target, current, false)
	return cmd
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		return model, nil

	case pageReadyMsg:
		return model.handlePageReady(message)

	case routeRetryMsg:
		outcome, cmd := model.router.retry(context.Background(), message)
		if outcome == navigationFailed {
			model.loading = false
			model.placeholder = true
			return model.showNotice("Страницы недоступны", noticeError)
		}
		return model, cmd

	case noticeMsg:
		return model.showNotice(message.text, message.level)

	case noticeFadeMsg:
		if message.id == model.noticeID {
			model.notice = ""
		}
		return model, nil

	case logRecordMsg:
		level := noticeInfo
		if message.level >= slog.LevelError {
			level = noticeError
		}
		return model.showNotice(message.summary, level)

	case unauthorizedMsg:
		return model.handleUnauthorized()

	case sessionChangedMsg:
		return model.handleSessionChanged(message.session)

	case authResultMsg:
		return model.handleAuthResult(message)

	case actionDoneMsg:
		return model.handleActionDone(message)

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	return model.forwardToPage(message)
}

func (model Model) handlePageReady(message pageReadyMsg) (tea.Model, tea.Cmd) {
	if model.router.Stale(message) {
		return model, nil
	}
	model.loading = false

	if message.err != nil {
		if message.page == access.PageEvents {
			// The ultimate fallback failed; show the static
			// placeholder rather than re-navigating into the same
			// failure.
			model.placeholder = true
			model.page = nil
			return model, nil
		}
		// Fall back to the events page. The failure itself was
		// already surfaced through the client's notifier.
		_, cmd := model.router.Navigate(context.Background(), access.PageEvents, model.currentSession(), false)
		model.loading = cmd != nil
		return model, cmd
	}

	model.placeholder = false
	model.page = message.loaded
	return model, nil
}

func (model Model) handleUnauthorized() (tea.Model, tea.Cmd) {
	model.deps.Sessions.Expire()
	if model.sessionPromptShown {
		return model, nil
	}
	model.sessionPromptShown = true
	model.modal = newAuthModal(modeLogin)
	return model.showNotice("Сессия истекла, войдите снова", noticeError)
}

func (model Model) handleSessionChanged(active *session.Session) (tea.Model, tea.Cmd) {
	// If the page on screen is no longer allowed (logout while on
	// profile, say), leave it for the events page.
	current := model.router.Current()
	if current != "" && !access.Allowed(current, active) {
		_, cmd := model.router.Navigate(context.Background(), access.PageEvents, active, false)
		model.loading = cmd != nil
		return model, cmd
	}
	return model, nil
}

func (model Model) handleAuthResult(message authResultMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		if model.modal != nil {
			model.modal.fail(message.err)
		}
		return model, nil
	}
	model.modal = nil
	model.sessionPromptShown = false

	if message.session == nil {
		// Registration succeeded without auto-login.
		return model.showNotice("Аккаунт создан, войдите", noticeSuccess)
	}

	// Reload the current page so it reflects the new identity.
	_, cmd := model.router.Reload(context.Background())
	model.loading = cmd != nil

	notice, noticeCmd := model.showNotice("Добро пожаловать, "+message.session.DisplayName(), noticeSuccess)
	return notice, tea.Batch(cmd, noticeCmd)
}

func (model Model) handleActionDone(message actionDoneMsg) (tea.Model, tea.Cmd) {
	if message.err != nil {
		// The client's notifier already posted the failure text.
		return model, nil
	}

	var commands []tea.Cmd
	if message.reload {
		_, cmd := model.router.Reload(context.Background())
		if cmd != nil {
			model.loading = true
			commands = append(commands, cmd)
		}
	}
	if message.notice != "" {
		updated, cmd := model.showNotice(message.notice, noticeSuccess)
		model = updated.(Model)
		commands = append(commands, cmd)
	}
	return model, tea.Batch(commands...)
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.modal != nil {
		cmd, closed := model.modal.update(message, model.deps)
		if closed {
			model.modal = nil
		}
		return model, cmd
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		// Let q pass through to the filter while it is typing.
		if message.Type == tea.KeyRunes && model.pageCapturesInput() {
			break
		}
		return model, tea.Quit

	case key.Matches(message, model.keys.PageEvents):
		if !model.pageCapturesInput() {
			return model.navigate(access.PageEvents)
		}
	case key.Matches(message, model.keys.PageBookings):
		if !model.pageCapturesInput() {
			return model.navigate(access.PageMyBookings)
		}
	case key.Matches(message, model.keys.PageProfile):
		if !model.pageCapturesInput() {
			return model.navigate(access.PageProfile)
		}
	case key.Matches(message, model.keys.PageAdmin):
		if !model.pageCapturesInput() {
			return model.navigate(access.PageAdmin)
		}

	case key.Matches(message, model.keys.NavigateBack):
		if !model.pageCapturesInput() {
			_, cmd := model.router.Back(context.Background(), model.currentSession())
			if cmd != nil {
				model.loading = true
			}
			return model, cmd
		}

	case key.Matches(message, model.keys.Refresh):
		if !model.pageCapturesInput() {
			model.placeholder = false
			_, cmd := model.router.Reload(context.Background())
			if cmd == nil {
				// Nothing loaded yet (placeholder at startup);
				// navigate fresh.
				return model.navigate(access.PageEvents)
			}
			model.loading = true
			return model, cmd
		}

	case key.Matches(message, model.keys.Login):
		if !model.pageCapturesInput() && !model.deps.Sessions.Store().LoggedIn() {
			model.modal = newAuthModal(modeLogin)
			return model, nil
		}

	case key.Matches(message, model.keys.Logout):
		if !model.pageCapturesInput() && model.deps.Sessions.Store().LoggedIn() {
			sessions := model.deps.Sessions
			return model, func() tea.Msg {
				sessions.Logout(context.Background())
				return noticeMsg{text: "Вы вышли из аккаунта", level: noticeSuccess}
			}
		}
	}

	return model.forwardToPage(message)
}

// pageCapturesInput reports whether the active page is in a mode that
// consumes raw typing (filter input, edit forms), in which case
// global single-letter shortcuts must not fire.
func (model Model) pageCapturesInput() bool {
	switch page := model.page.(type) {
	case *eventsPage:
		// Open detail and seat views consume backspace to close
		// themselves, so they capture input like the filter does.
		return page.filter.Active || page.detail != nil || page.dropdown != nil
	case *profilePage:
		return page.section != sectionView
	case *bookingsPage:
		return page.dropdown != nil
	case *adminPage:
		return page.dropdown != nil
	}
	return false
}

func (model Model) navigate(target access.Page) (tea.Model, tea.Cmd) {
	outcome, cmd := model.router.Navigate(context.Background(), target, model.currentSession(), true)
	switch outcome {
	case navigationDenied:
		return model.showNotice(accessDeniedNotice, noticeError)
	case navigationFailed:
		model.placeholder = true
		return model, nil
	}
	if cmd != nil && outcome == navigationLoad {
		model.loading = true
	}
	return model, cmd
}

func (model Model) forwardToPage(message tea.Msg) (tea.Model, tea.Cmd) {
	if model.page == nil {
		return model, nil
	}
	page, cmd := model.page.update(message, model.keys)
	model.page = page
	return model, cmd
}

func (model Model) showNotice(text string, level noticeLevel) (tea.Model, tea.Cmd) {
	model.notice = text
	model.noticeKind = level
	model.noticeID++
	return model, fadeAfter(model.noticeID)
}

func (model Model) currentSession() *session.Session {
	return model.deps.Sessions.Store().Current()
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return ""
	}

	header := model.viewHeader()
	status := model.viewStatusLine()
	bodyHeight := model.height - 2

	var body string
	switch {
	case model.placeholder:
		body = model.viewPlaceholder()
	case model.loading && model.page == nil:
		body = lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Загрузка…")
	case model.page != nil:
		body = model.page.view(model.theme, model.width, bodyHeight)
	}

	view := header + "\n" + fitHeight(body, bodyHeight) + "\n" + status

	if model.modal != nil {
		overlay := model.modal.render(model.theme)
		boxWidth, boxHeight := model.modal.size()
		anchorX, anchorY := centerAnchor(model.width, model.height, boxWidth, boxHeight)
		view = spliceOverlay(view, overlay, anchorX, anchorY)
	}
	return view
}

func (model Model) viewHeader() string {
	activeStyle := lipgloss.NewStyle().Foreground(model.theme.AccentColor).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	userStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground)

	current := model.currentSession()
	var parts []string
	for index, page := range access.Visible(current) {
		label := lipglossIndex(index) + " " + pageTitle(string(page))
		if page == model.router.Current() {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, inactiveStyle.Render(label))
		}
	}
	left := " " + strings.Join(parts, "  ")

	right := inactiveStyle.Render("L — войти")
	if current != nil {
		right = userStyle.Render(current.DisplayName()) + inactiveStyle.Render(" · Q — выйти")
	}

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// lipglossIndex renders the 1-based hotkey for a nav position.
func lipglossIndex(index int) string {
	return string(rune('1' + index))
}

func (model Model) viewStatusLine() string {
	if model.notice != "" {
		color := model.theme.FaintText
		switch model.noticeKind {
		case noticeError:
			color = model.theme.NoticeError
		case noticeSuccess:
			color = model.theme.NoticeSuccess
		}
		return lipgloss.NewStyle().Foreground(color).Render(" " + truncate(model.notice, model.width-2))
	}

	help := " q — выход · 1-4 — страницы · r — обновить · BS — назад"
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(truncate(help, model.width-1))
}

func (model Model) viewPlaceholder() string {
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	return headerStyle.Render("Сервис временно недоступен") + "\n\n" +
		faintStyle.Render("Не удалось загрузить события. Нажмите r, чтобы попробовать снова.")
}

// fitHeight pads or trims a body to exactly the given number of
// lines so the status line stays anchored to the bottom row.
func fitHeight(body string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(body, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
