// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/velvet-club/velvet/lib/access"
	"github.com/velvet-club/velvet/lib/api"
)

// adminSection selects which admin panel is visible.
type adminSection int

const (
	adminStats adminSection = iota
	adminUsers
	adminLogs
	adminHealth
)

// adminPage is the management surface. Moderators see the statistics
// dashboard and the user list; the audit log and system health need
// the admin role. Section availability is computed at load time from
// the session and never offers what the role cannot use. User
// mutations are not pre-filtered for moderators: the backend rejects
// them and its message is shown verbatim.
type adminPage struct {
	deps *Deps

	sections []adminSection
	active   int

	stats  *api.AdminStats
	users  []api.AdminUser
	logs   []api.AuditLogEntry
	health *api.SystemHealth

	userCursor int
	userScroll int
	logScroll  int

	// logFilter is the action filter applied to the audit log; empty
	// shows everything.
	logFilter string

	// dropdown is the role picker for the highlighted user; non-nil
	// while open.
	dropdown *DropdownOverlay
}

// adminLogsMsg delivers a filtered audit log reload.
type adminLogsMsg struct {
	logs []api.AuditLogEntry
	err  error
}

// auditLogPageSize bounds how many audit entries one fetch returns.
const auditLogPageSize = 100

// loadAdminPage is the router loader for the admin page. It fetches
// only the panels the session's role may see; a moderator load never
// touches the admin-only endpoints.
func loadAdminPage(deps *Deps) PageLoader {
	return func(ctx context.Context) (pageModel, error) {
		current := deps.Sessions.Store().Current()

		page := &adminPage{deps: deps, sections: []adminSection{adminStats}}

		stats, err := deps.Client.AdminStats(ctx)
		if err != nil {
			return nil, err
		}
		page.stats = stats

		if access.CanViewUsers(current) {
			users, err := deps.Client.AdminUsers(ctx)
			if err != nil {
				return nil, err
			}
			sort.Slice(users, func(left, right int) bool {
				return users[left].Username < users[right].Username
			})
			page.users = users
			page.sections = append(page.sections, adminUsers)
		}
		if access.CanViewAuditLogs(current) {
			logs, err := deps.Client.AuditLogs(ctx, api.AuditLogFilter{Limit: auditLogPageSize})
			if err != nil {
				return nil, err
			}
			page.logs = logs
			page.sections = append(page.sections, adminLogs)
		}
		if access.CanViewSystemHealth(current) {
			health, err := deps.Client.SystemHealth(ctx)
			if err != nil {
				return nil, err
			}
			page.health = health
			page.sections = append(page.sections, adminHealth)
		}
		return page, nil
	}
}

func (page *adminPage) title() string { return pageTitle("admin") }

func (page *adminPage) section() adminSection {
	return page.sections[page.active]
}

func sectionLabel(section adminSection) string {
	switch section {
	case adminStats:
		return "Статистика"
	case adminUsers:
		return "Пользователи"
	case adminLogs:
		return "Журнал"
	case adminHealth:
		return "Система"
	}
	return ""
}

func (page *adminPage) update(message tea.Msg, keys KeyMap) (pageModel, tea.Cmd) {
	switch message := message.(type) {
	case adminLogsMsg:
		if message.err == nil {
			page.logs = message.logs
			page.logScroll = 0
		}
		return page, nil

	case tea.KeyMsg:
		if page.dropdown != nil {
			return page.updateDropdown(message, keys)
		}
		if key.Matches(message, keys.NextSection) {
			page.active = (page.active + 1) % len(page.sections)
			return page, nil
		}
		switch page.section() {
		case adminUsers:
			return page.updateUsers(message, keys)
		case adminLogs:
			return page.updateLogs(message, keys)
		}
	}
	return page, nil
}

func (page *adminPage) updateUsers(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	switch {
	case key.Matches(message, keys.Up):
		if page.userCursor > 0 {
			page.userCursor--
		}
	case key.Matches(message, keys.Down):
		if page.userCursor < len(page.users)-1 {
			page.userCursor++
		}
	case key.Matches(message, keys.Select):
		return page.openRoleDropdown()
	case key.Matches(message, keys.Action):
		return page.toggleUserActive()
	}
	return page, nil
}

func (page *adminPage) updateLogs(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	switch {
	case key.Matches(message, keys.Up):
		if page.logScroll > 0 {
			page.logScroll--
		}
	case key.Matches(message, keys.Down):
		if page.logScroll < len(page.logs)-1 {
			page.logScroll++
		}
	case key.Matches(message, keys.FilterClear):
		if page.logFilter != "" {
			page.logFilter = ""
			return page, page.reloadLogs()
		}
	case key.Matches(message, keys.Action):
		// Cycle through the known action filters.
		page.logFilter = nextActionFilter(page.logFilter)
		return page, page.reloadLogs()
	}
	return page, nil
}

// actionFilters are the audit actions offered by the filter cycle.
var actionFilters = []string{"", "login", "logout", "booking_created", "booking_cancelled", "payment", "user_updated"}

func nextActionFilter(current string) string {
	for index, action := range actionFilters {
		if action == current {
			return actionFilters[(index+1)%len(actionFilters)]
		}
	}
	return ""
}

func (page *adminPage) reloadLogs() tea.Cmd {
	client := page.deps.Client
	filter := api.AuditLogFilter{Limit: auditLogPageSize, Action: page.logFilter}
	return func() tea.Msg {
		logs, err := client.AuditLogs(context.Background(), filter)
		return adminLogsMsg{logs: logs, err: err}
	}
}

// openRoleDropdown opens the role picker for the highlighted user.
// An admin editing their own account is blocked client-side:
// self-demotion would lock the last admin out. Moderator attempts go
// through so the backend's rejection is shown verbatim.
func (page *adminPage) openRoleDropdown() (pageModel, tea.Cmd) {
	if page.userCursor >= len(page.users) {
		return page, nil
	}
	target := page.users[page.userCursor]
	current := page.deps.Sessions.Store().Current()
	if access.CanManageUsers(current) && !access.CanModifyUser(current, target.UserID) {
		return page, notify("Нельзя изменить собственную учетную запись", noticeError)
	}

	var options []DropdownOption
	for _, role := range []api.Role{api.RoleUser, api.RoleModerator, api.RoleAdmin} {
		options = append(options, DropdownOption{Label: roleLabel(role), Value: string(role)})
	}
	page.dropdown = &DropdownOverlay{
		Options: options,
		AnchorX: 4,
		AnchorY: page.userCursor - page.userScroll + 3,
		Field:   "role",
		ItemID:  target.UserID,
	}
	return page, nil
}

func (page *adminPage) updateDropdown(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	switch {
	case key.Matches(message, keys.Up):
		page.dropdown.MoveUp()
	case key.Matches(message, keys.Down):
		page.dropdown.MoveDown()
	case key.Matches(message, keys.FilterClear):
		page.dropdown = nil
	case key.Matches(message, keys.Select):
		option := page.dropdown.Selected()
		userID := page.dropdown.ItemID
		page.dropdown = nil
		return page, page.setUserRole(userID, api.Role(option.Value))
	}
	return page, nil
}

func (page *adminPage) setUserRole(userID int64, role api.Role) tea.Cmd {
	client := page.deps.Client
	return func() tea.Msg {
		_, err := client.UpdateUser(context.Background(), userID, api.UpdateUserRequest{Role: &role})
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: "Роль обновлена", reload: true}
	}
}

func (page *adminPage) toggleUserActive() (pageModel, tea.Cmd) {
	if page.userCursor >= len(page.users) {
		return page, nil
	}
	target := page.users[page.userCursor]
	current := page.deps.Sessions.Store().Current()
	if access.CanManageUsers(current) && !access.CanModifyUser(current, target.UserID) {
		return page, notify("Нельзя изменить собственную учетную запись", noticeError)
	}

	client := page.deps.Client
	active := !target.IsActive
	return page, func() tea.Msg {
		_, err := client.UpdateUser(context.Background(), target.UserID, api.UpdateUserRequest{IsActive: &active})
		if err != nil {
			return actionDoneMsg{err: err}
		}
		if active {
			return actionDoneMsg{notice: "Пользователь активирован", reload: true}
		}
		return actionDoneMsg{notice: "Пользователь заблокирован", reload: true}
	}
}

func (page *adminPage) view(theme Theme, width, height int) string {
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	activeTabStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).Underline(true)

	var tabs []string
	for index, section := range page.sections {
		label := sectionLabel(section)
		if index == page.active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, faintStyle.Render(label))
		}
	}
	header := strings.Join(tabs, "  ·  ")

	var body string
	switch page.section() {
	case adminStats:
		body = page.viewStats(theme)
	case adminUsers:
		body = page.viewUsers(theme, height-3)
	case adminLogs:
		body = page.viewLogs(theme, height-3)
	case adminHealth:
		body = page.viewHealth(theme)
	}

	view := header + "\n\n" + body
	if page.dropdown != nil {
		view = spliceOverlay(view, page.dropdown.Render(theme), page.dropdown.AnchorX, page.dropdown.AnchorY)
	}
	return view
}

func (page *adminPage) viewStats(theme Theme) string {
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	overall := page.stats.Overall
	var lines []string
	lines = append(lines, headerStyle.Render("Общие показатели"))
	lines = append(lines, fmt.Sprintf("  Пользователи: %d   События: %d (активных %d, запланированных %d)",
		overall.TotalUsers, overall.TotalEvents, overall.ActiveEvents, overall.PlannedEvents))
	lines = append(lines, fmt.Sprintf("  Бронирования: %d   Выручка: %s",
		overall.TotalBookings, formatPrice(overall.TotalRevenue)))

	if len(page.stats.UpcomingEvents) > 0 {
		lines = append(lines, "", headerStyle.Render("Ближайшие события"))
		for _, event := range page.stats.UpcomingEvents {
			lines = append(lines, fmt.Sprintf("  %-30s %s  %3d/%-3d (%.0f%%)",
				truncate(event.Title, 30), formatDate(event.EventDate),
				event.TotalBookings, event.Capacity, event.BookingPercentage))
		}
	}

	if len(page.stats.Categories) > 0 {
		lines = append(lines, "", headerStyle.Render("По категориям"))
		for _, category := range page.stats.Categories {
			lines = append(lines, fmt.Sprintf("  %-20s события: %-3d брони: %-4d выручка: %s",
				truncate(category.Category, 20), category.TotalEvents,
				category.TotalBookings, formatPrice(category.Revenue)))
		}
	}

	if len(page.stats.Zones) > 0 {
		lines = append(lines, "", headerStyle.Render("По зонам"))
		for _, zone := range page.stats.Zones {
			lines = append(lines, fmt.Sprintf("  %-20s событий: %-3d средняя цена: %s",
				truncate(zone.ZoneName, 20), zone.EventsUsingZone, formatPrice(zone.AveragePrice)))
		}
	}

	lines = append(lines, "", faintStyle.Render("Tab — следующий раздел"))
	return strings.Join(lines, "\n")
}

func (page *adminPage) viewUsers(theme Theme, height int) string {
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var lines []string
	lines = append(lines, faintStyle.Render(" Логин              Email                        Роль           Статус    Брони"))

	windowHeight := height - 2
	page.userScroll = clampScroll(page.userScroll, page.userCursor, len(page.users), windowHeight)
	var rows []string
	for index := page.userScroll; index < len(page.users) && index-page.userScroll < windowHeight; index++ {
		user := page.users[index]
		roleStyle := lipgloss.NewStyle().Foreground(theme.RoleColor(user.Role))

		status := "активен"
		if !user.IsActive {
			status = "заблокирован"
		}
		row := fmt.Sprintf(" %-18s %-28s %-14s %-9s %d",
			truncate(user.Username, 18),
			truncate(user.Email, 28),
			roleStyle.Render(fmt.Sprintf("%-14s", roleLabel(user.Role))),
			status,
			user.Stats.TotalBookings)
		if index == page.userCursor {
			row = selectedStyle.Render("▸") + row
		} else {
			row = " " + row
		}
		rows = append(rows, row)
	}

	table := strings.Join(rows, "\n")
	if len(page.users) > windowHeight {
		bar := renderScrollbar(theme, len(rows), len(page.users), windowHeight, page.userScroll)
		table = lipgloss.JoinHorizontal(lipgloss.Top, table, " ", bar)
	}
	lines = append(lines, table)

	lines = append(lines, "", faintStyle.Render("Enter — роль, a — блокировка"))
	return strings.Join(lines, "\n")
}

func (page *adminPage) viewLogs(theme Theme, height int) string {
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	var lines []string
	filterLabel := "все действия"
	if page.logFilter != "" {
		filterLabel = page.logFilter
	}
	lines = append(lines, faintStyle.Render("Фильтр: ")+filterLabel)

	windowHeight := height - 3
	var rows []string
	for index := page.logScroll; index < len(page.logs) && index-page.logScroll < windowHeight; index++ {
		entry := page.logs[index]
		rows = append(rows, fmt.Sprintf(" %s  %-16s %s",
			formatDate(entry.Timestamp), truncate(entry.Username, 16), entry.Action))
	}
	if len(page.logs) == 0 {
		lines = append(lines, faintStyle.Render("Журнал пуст"))
	} else {
		table := strings.Join(rows, "\n")
		if len(page.logs) > windowHeight {
			bar := renderScrollbar(theme, len(rows), len(page.logs), windowHeight, page.logScroll)
			table = lipgloss.JoinHorizontal(lipgloss.Top, table, " ", bar)
		}
		lines = append(lines, table)
	}

	lines = append(lines, "", faintStyle.Render("a — сменить фильтр, Esc — сброс"))
	return strings.Join(lines, "\n")
}

func (page *adminPage) viewHealth(theme Theme) string {
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	okStyle := lipgloss.NewStyle().Foreground(theme.NoticeSuccess)
	badStyle := lipgloss.NewStyle().Foreground(theme.NoticeError)

	statusStyle := okStyle
	if page.health.Status != "healthy" && page.health.Status != "ok" {
		statusStyle = badStyle
	}

	var lines []string
	lines = append(lines, headerStyle.Render("Состояние системы: ")+statusStyle.Render(page.health.Status))
	if page.health.Database != "" {
		lines = append(lines, "  База данных: "+page.health.Database)
	}
	if page.health.Uptime != "" {
		lines = append(lines, "  Время работы: "+page.health.Uptime)
	}

	if len(page.health.Checks) > 0 {
		keys := make([]string, 0, len(page.health.Checks))
		for name := range page.health.Checks {
			keys = append(keys, name)
		}
		sort.Strings(keys)
		lines = append(lines, "")
		for _, name := range keys {
			lines = append(lines, fmt.Sprintf("  %s: %v", name, page.health.Checks[name]))
		}
	}
	return strings.Join(lines, "\n")
}
