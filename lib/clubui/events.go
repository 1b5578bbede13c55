// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/velvet-club/velvet/lib/access"
	"github.com/velvet-club/velvet/lib/api"
)

// eventsPage is the event catalog: a filterable list on top of a
// detail view with zone cards and the seat grid. Booking happens
// from the seat grid. Regular users see a read-only page; managers
// additionally get the status picker on the detail view.
type eventsPage struct {
	deps *Deps

	events  []api.Event
	visible []api.Event
	filter  FilterModel

	cursor int
	scroll int

	// Detail state. detail is non-nil while a single event is open.
	detail     *api.Event
	zoneCursor int

	// Seat grid state. seats is non-nil while a zone's seat map is
	// open; seatZone is the zone it belongs to.
	seats      []api.Seat
	seatZone   int64
	seatCursor int

	// dropdown is the status picker for the open event; non-nil while
	// a manager is changing the event status.
	dropdown *DropdownOverlay
}

// eventDetailMsg delivers a loaded event detail to the page.
type eventDetailMsg struct {
	event *api.Event
	err   error
}

// eventSeatsMsg delivers a zone's seat map to the page.
type eventSeatsMsg struct {
	zoneID int64
	seats  []api.Seat
	err    error
}

// loadEventsPage is the router loader for the events page.
func loadEventsPage(deps *Deps) PageLoader {
	return func(ctx context.Context) (pageModel, error) {
		events, err := deps.Client.Events(ctx)
		if err != nil {
			return nil, err
		}
		page := &eventsPage{deps: deps, events: events}
		page.applyFilter()
		return page, nil
	}
}

func (page *eventsPage) title() string { return pageTitle("events") }

func (page *eventsPage) applyFilter() {
	page.visible = page.filter.Apply(page.events)
	if page.cursor >= len(page.visible) {
		page.cursor = len(page.visible) - 1
	}
	if page.cursor < 0 {
		page.cursor = 0
	}
}

func (page *eventsPage) update(message tea.Msg, keys KeyMap) (pageModel, tea.Cmd) {
	switch message := message.(type) {
	case eventDetailMsg:
		if message.err != nil {
			return page, nil
		}
		page.detail = message.event
		page.zoneCursor = 0
		page.seats = nil
		return page, nil

	case eventSeatsMsg:
		if message.err != nil {
			return page, nil
		}
		page.seats = message.seats
		page.seatZone = message.zoneID
		page.seatCursor = 0
		return page, nil

	case tea.KeyMsg:
		if page.filter.Active {
			return page.updateFilterInput(message, keys)
		}
		if page.dropdown != nil {
			return page.updateDropdown(message, keys)
		}
		if page.seats != nil {
			return page.updateSeatGrid(message, keys)
		}
		if page.detail != nil {
			return page.updateDetail(message, keys)
		}
		return page.updateList(message, keys)
	}
	return page, nil
}

func (page *eventsPage) updateFilterInput(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		page.filter.Clear()
		page.applyFilter()
	case tea.KeyEnter:
		page.filter.Active = false
	case tea.KeyBackspace:
		page.filter.Backspace()
		page.applyFilter()
	case tea.KeyRunes, tea.KeySpace:
		page.filter.Type(string(message.Runes))
		page.applyFilter()
	}
	return page, nil
}

func (page *eventsPage) updateList(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	switch {
	case key.Matches(message, keys.Up):
		if page.cursor > 0 {
			page.cursor--
		}
	case key.Matches(message, keys.Down):
		if page.cursor < len(page.visible)-1 {
			page.cursor++
		}
	case key.Matches(message, keys.Home):
		page.cursor = 0
	case key.Matches(message, keys.End):
		page.cursor = len(page.visible) - 1
	case key.Matches(message, keys.FilterActivate):
		page.filter.Active = true
		page.cursor = 0
		page.scroll = 0
	case key.Matches(message, keys.FilterClear):
		page.filter.Clear()
		page.applyFilter()
	case key.Matches(message, keys.Select):
		if page.cursor < len(page.visible) {
			return page, page.loadDetail(page.visible[page.cursor].EventID)
		}
	}
	return page, nil
}

func (page *eventsPage) updateDetail(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	zones := page.detail.Zones
	switch {
	case key.Matches(message, keys.FilterClear), key.Matches(message, keys.NavigateBack):
		page.detail = nil
	case key.Matches(message, keys.Left):
		if page.zoneCursor > 0 {
			page.zoneCursor--
		}
	case key.Matches(message, keys.Right):
		if page.zoneCursor < len(zones)-1 {
			page.zoneCursor++
		}
	case key.Matches(message, keys.Select):
		if page.zoneCursor < len(zones) {
			zone := zones[page.zoneCursor]
			return page, page.loadSeats(page.detail.EventID, zone.ZoneID)
		}
	case key.Matches(message, keys.Action):
		return page.openStatusDropdown()
	}
	return page, nil
}

// openStatusDropdown opens the event status picker. Only managers get
// the dropdown; for everyone else the key does nothing.
func (page *eventsPage) openStatusDropdown() (pageModel, tea.Cmd) {
	if !access.CanManageEvents(page.deps.Sessions.Store().Current()) {
		return page, nil
	}
	var options []DropdownOption
	for _, status := range []string{api.EventPlanned, api.EventActive, api.EventCancelled} {
		options = append(options, DropdownOption{Label: eventStatusLabel(status), Value: status})
	}
	page.dropdown = &DropdownOverlay{
		Options: options,
		AnchorX: 4,
		AnchorY: 2,
		Field:   "status",
		ItemID:  page.detail.EventID,
	}
	return page, nil
}

func (page *eventsPage) updateDropdown(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	switch {
	case key.Matches(message, keys.Up):
		page.dropdown.MoveUp()
	case key.Matches(message, keys.Down):
		page.dropdown.MoveDown()
	case key.Matches(message, keys.FilterClear):
		page.dropdown = nil
	case key.Matches(message, keys.Select):
		option := page.dropdown.Selected()
		eventID := page.dropdown.ItemID
		page.dropdown = nil
		return page, page.setEventStatus(eventID, option.Value)
	}
	return page, nil
}

func (page *eventsPage) setEventStatus(eventID int64, status string) tea.Cmd {
	client := page.deps.Client
	return func() tea.Msg {
		if err := client.SetEventStatus(context.Background(), eventID, status); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: "Статус мероприятия обновлен", reload: true}
	}
}

// seatGridColumns is the number of seats per row in the seat grid.
const seatGridColumns = 10

func (page *eventsPage) updateSeatGrid(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	switch {
	case key.Matches(message, keys.FilterClear), key.Matches(message, keys.NavigateBack):
		page.seats = nil
	case key.Matches(message, keys.Left):
		if page.seatCursor > 0 {
			page.seatCursor--
		}
	case key.Matches(message, keys.Right):
		if page.seatCursor < len(page.seats)-1 {
			page.seatCursor++
		}
	case key.Matches(message, keys.Up):
		if page.seatCursor >= seatGridColumns {
			page.seatCursor -= seatGridColumns
		}
	case key.Matches(message, keys.Down):
		if page.seatCursor+seatGridColumns < len(page.seats) {
			page.seatCursor += seatGridColumns
		}
	case key.Matches(message, keys.Select):
		return page, page.bookSelectedSeat()
	}
	return page, nil
}

func (page *eventsPage) loadDetail(eventID int64) tea.Cmd {
	client := page.deps.Client
	return func() tea.Msg {
		event, err := client.Event(context.Background(), eventID)
		return eventDetailMsg{event: event, err: err}
	}
}

func (page *eventsPage) loadSeats(eventID, zoneID int64) tea.Cmd {
	client := page.deps.Client
	return func() tea.Msg {
		seats, err := client.EventSeats(context.Background(), eventID, zoneID)
		return eventSeatsMsg{zoneID: zoneID, seats: seats, err: err}
	}
}

// bookSelectedSeat creates a pending booking for the highlighted
// seat. Requires a session; anonymous users get a login hint instead
// of an API error.
func (page *eventsPage) bookSelectedSeat() tea.Cmd {
	if page.seatCursor >= len(page.seats) {
		return nil
	}
	seat := page.seats[page.seatCursor]
	if seat.IsBooked {
		return notify("Место уже занято", noticeError)
	}
	if !page.deps.Sessions.Store().LoggedIn() {
		return notify("Войдите, чтобы забронировать место", noticeError)
	}

	client := page.deps.Client
	eventID := page.detail.EventID
	return func() tea.Msg {
		_, err := client.CreateBooking(context.Background(), eventID, seat.SeatID)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: "Место забронировано", reload: true}
	}
}

// notify returns a command that posts a status line notice.
func notify(text string, level noticeLevel) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg{text: text, level: level}
	}
}

func (page *eventsPage) view(theme Theme, width, height int) string {
	if page.seats != nil {
		return page.viewSeatGrid(theme, width, height)
	}
	if page.detail != nil {
		return page.viewDetail(theme, width, height)
	}
	return page.viewList(theme, width, height)
}

func (page *eventsPage) viewList(theme Theme, width, height int) string {
	normalStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var lines []string
	if page.filter.Active || page.filter.Input != "" {
		lines = append(lines, faintStyle.Render("Поиск: ")+normalStyle.Render(page.filter.Input+"▏"))
	}

	if len(page.visible) == 0 {
		lines = append(lines, faintStyle.Render("Событий не найдено"))
		return strings.Join(lines, "\n")
	}

	listHeight := height - len(lines)
	page.scroll = clampScroll(page.scroll, page.cursor, len(page.visible), listHeight)

	titleWidth := width - 40
	if titleWidth < 16 {
		titleWidth = 16
	}
	var rows []string
	for index := page.scroll; index < len(page.visible) && index-page.scroll < listHeight; index++ {
		event := page.visible[index]
		statusStyle := lipgloss.NewStyle().Foreground(theme.EventStatusColor(event.Status))

		row := fmt.Sprintf(" %-*s  %s  %s",
			titleWidth, truncate(event.Title, titleWidth),
			formatDate(event.EventDate),
			statusStyle.Render(eventStatusLabel(event.Status)))
		if index == page.cursor {
			row = selectedStyle.Render("▸") + row
		} else {
			row = " " + row
		}
		rows = append(rows, row)
	}

	list := strings.Join(rows, "\n")
	if len(page.visible) > listHeight {
		bar := renderScrollbar(theme, len(rows), len(page.visible), listHeight, page.scroll)
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", bar)
	}
	lines = append(lines, list)
	return strings.Join(lines, "\n")
}

func (page *eventsPage) viewDetail(theme Theme, width, height int) string {
	event := page.detail
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	statusStyle := lipgloss.NewStyle().Foreground(theme.EventStatusColor(event.Status))

	var lines []string
	lines = append(lines, headerStyle.Render(event.Title))
	lines = append(lines, faintStyle.Render(formatDate(event.EventDate))+"  "+statusStyle.Render(eventStatusLabel(event.Status)))
	if event.CategoryName != "" {
		lines = append(lines, faintStyle.Render("Категория: ")+event.CategoryName)
	}
	if event.Description != "" {
		lines = append(lines, "", event.Description)
	}
	lines = append(lines, "", headerStyle.Render("Зоны"))

	if len(event.Zones) == 0 {
		lines = append(lines, faintStyle.Render("Нет доступных зон"))
	}

	var cards []string
	for index, zone := range event.Zones {
		borderColor := theme.BorderColor
		if index == page.zoneCursor {
			borderColor = theme.AccentColor
		}
		cardStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
		card := fmt.Sprintf("%s\n%s\nсвободно: %d",
			zone.Name, formatPrice(zone.ZonePrice), zone.AvailableSeats)
		cards = append(cards, cardStyle.Render(card))
	}
	if len(cards) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	hint := "Enter — выбрать зону, Esc — назад"
	if access.CanManageEvents(page.deps.Sessions.Store().Current()) {
		hint += ", a — статус"
	}
	lines = append(lines, "", faintStyle.Render(hint))

	view := strings.Join(lines, "\n")
	if page.dropdown != nil {
		view = spliceOverlay(view, page.dropdown.Render(theme), page.dropdown.AnchorX, page.dropdown.AnchorY)
	}
	return view
}

func (page *eventsPage) viewSeatGrid(theme Theme, width, height int) string {
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	freeStyle := lipgloss.NewStyle().Foreground(theme.SeatFree)
	bookedStyle := lipgloss.NewStyle().Foreground(theme.SeatBooked)
	cursorStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var lines []string
	lines = append(lines, headerStyle.Render("Выбор места — "+page.detail.Title))
	lines = append(lines, "")

	var row strings.Builder
	for index, seat := range page.seats {
		cell := fmt.Sprintf(" %-4s", seat.SeatNumber)
		switch {
		case index == page.seatCursor:
			cell = cursorStyle.Render(cell)
		case seat.IsBooked:
			cell = bookedStyle.Render(cell)
		default:
			cell = freeStyle.Render(cell)
		}
		row.WriteString(cell)
		if (index+1)%seatGridColumns == 0 {
			lines = append(lines, row.String())
			row.Reset()
		}
	}
	if row.Len() > 0 {
		lines = append(lines, row.String())
	}

	lines = append(lines, "", faintStyle.Render("Enter — забронировать, Esc — назад"))
	return strings.Join(lines, "\n")
}

// clampScroll keeps the cursor visible within a window of the given
// height, returning the adjusted scroll offset.
func clampScroll(scroll, cursor, total, height int) int {
	if height <= 0 {
		return 0
	}
	if cursor < scroll {
		scroll = cursor
	}
	if cursor >= scroll+height {
		scroll = cursor - height + 1
	}
	if scroll > total-height {
		scroll = total - height
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}
