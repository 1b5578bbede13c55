// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

// authMode selects which form the auth modal shows.
type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// authResultMsg delivers the outcome of a login or register attempt.
type authResultMsg struct {
	session *session.Session
	err     error
}

// authModal is the floating login/register form. While open it
// captures all keyboard input; Tab cycles fields, Enter submits,
// Escape dismisses, Ctrl+R toggles between login and registration.
type authModal struct {
	mode   authMode
	inputs []textinput.Model
	focus  int

	// errText shows the last submit failure inside the modal instead
	// of the status line, which the modal covers.
	errText string

	// submitting blocks double-submits while a request is in flight.
	submitting bool
}

// Field order. Login uses the first two; registration uses all.
const (
	fieldUsername = iota
	fieldPassword
	fieldConfirm
	fieldEmail
	fieldFirstName
	fieldLastName
)

var fieldLabels = []string{"Логин", "Пароль", "Повтор пароля", "Email", "Имя", "Фамилия"}

func newAuthModal(mode authMode) *authModal {
	modal := &authModal{mode: mode}
	for index, label := range fieldLabels {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = label
		input.CharLimit = 100
		if index == fieldPassword || index == fieldConfirm {
			input.EchoMode = textinput.EchoPassword
		}
		input.Width = 28
		modal.inputs = append(modal.inputs, input)
	}
	modal.inputs[0].Focus()
	return modal
}

func (modal *authModal) fieldCount() int {
	if modal.mode == modeLogin {
		return 2
	}
	return len(modal.inputs)
}

func (modal *authModal) setFocus(index int) {
	modal.focus = index
	for id := range modal.inputs {
		if id == index {
			modal.inputs[id].Focus()
		} else {
			modal.inputs[id].Blur()
		}
	}
}

// update routes keyboard input to the modal. The second result is
// true when the modal should close.
func (modal *authModal) update(message tea.KeyMsg, deps *Deps) (tea.Cmd, bool) {
	switch message.Type {
	case tea.KeyEscape:
		return nil, true
	case tea.KeyTab, tea.KeyDown:
		modal.setFocus((modal.focus + 1) % modal.fieldCount())
		return nil, false
	case tea.KeyShiftTab, tea.KeyUp:
		modal.setFocus((modal.focus + modal.fieldCount() - 1) % modal.fieldCount())
		return nil, false
	case tea.KeyCtrlR:
		if modal.mode == modeLogin {
			modal.mode = modeRegister
		} else {
			modal.mode = modeLogin
		}
		modal.errText = ""
		modal.setFocus(0)
		return nil, false
	case tea.KeyEnter:
		return modal.submit(deps), false
	}

	var cmd tea.Cmd
	modal.inputs[modal.focus], cmd = modal.inputs[modal.focus].Update(message)
	return cmd, false
}

// submit validates locally and issues the login or register call.
// Validation failures render inside the modal without any network
// traffic.
func (modal *authModal) submit(deps *Deps) tea.Cmd {
	if modal.submitting {
		return nil
	}
	username := modal.inputs[fieldUsername].Value()
	password := modal.inputs[fieldPassword].Value()

	if err := session.ValidatePassword(password); err != nil {
		modal.errText = err.Error()
		return nil
	}

	if modal.mode == modeLogin {
		modal.submitting = true
		modal.errText = ""
		sessions := deps.Sessions
		return func() tea.Msg {
			active, err := sessions.Login(context.Background(), username, password)
			return authResultMsg{session: active, err: err}
		}
	}

	if err := session.ValidatePasswordPair(password, modal.inputs[fieldConfirm].Value()); err != nil {
		modal.errText = err.Error()
		return nil
	}

	request := api.RegisterRequest{
		Username:  username,
		Password:  password,
		Email:     modal.inputs[fieldEmail].Value(),
		FirstName: modal.inputs[fieldFirstName].Value(),
		LastName:  modal.inputs[fieldLastName].Value(),
	}
	if err := session.ValidateUsername(request.Username); err != nil {
		modal.errText = err.Error()
		return nil
	}
	if err := session.ValidateEmail(request.Email); err != nil {
		modal.errText = err.Error()
		return nil
	}

	modal.submitting = true
	modal.errText = ""
	sessions := deps.Sessions
	return func() tea.Msg {
		active, err := sessions.Register(context.Background(), request)
		return authResultMsg{session: active, err: err}
	}
}

// fail records a submit failure and re-enables the form.
func (modal *authModal) fail(err error) {
	modal.submitting = false
	modal.errText = err.Error()
}

// render produces the modal box lines for overlay splicing.
func (modal *authModal) render(theme Theme) []string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Background(theme.OverlayBackground).
		Bold(true)
	backgroundStyle := lipgloss.NewStyle().
		Foreground(theme.OverlayForeground).
		Background(theme.OverlayBackground)
	labelStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Background(theme.OverlayBackground)
	errorStyle := lipgloss.NewStyle().
		Foreground(theme.NoticeError).
		Background(theme.OverlayBackground)
	helpStyle := labelStyle

	title := "Вход"
	help := "Enter — войти · C-r — регистрация · Esc — закрыть"
	if modal.mode == modeRegister {
		title = "Регистрация"
		help = "Enter — создать аккаунт · C-r — вход · Esc — закрыть"
	}

	const innerWidth = 44
	var rows []string
	rows = append(rows, titleStyle.Render(title))
	rows = append(rows, "")
	for index := 0; index < modal.fieldCount(); index++ {
		rows = append(rows, labelStyle.Render(fieldLabels[index]+":")+" "+modal.inputs[index].View())
	}
	if modal.errText != "" {
		rows = append(rows, "")
		rows = append(rows, errorStyle.Render(truncate(modal.errText, innerWidth)))
	}
	if modal.submitting {
		rows = append(rows, "")
		rows = append(rows, labelStyle.Render("Отправка…"))
	}
	rows = append(rows, "")
	rows = append(rows, helpStyle.Render(truncate(help, innerWidth)))

	// Pad every row to a uniform width with the overlay background so
	// the box reads as a solid surface.
	var lines []string
	for _, row := range rows {
		rowWidth := ansi.StringWidth(row)
		padding := innerWidth - rowWidth
		if padding < 0 {
			padding = 0
		}
		lines = append(lines, backgroundStyle.Render(" ")+row+backgroundStyle.Render(strings.Repeat(" ", padding+1)))
	}
	return lines
}

// size returns the rendered box dimensions for centering.
func (modal *authModal) size() (int, int) {
	lines := modal.render(DefaultTheme)
	if len(lines) == 0 {
		return 0, 0
	}
	return ansi.StringWidth(lines[0]), len(lines)
}
