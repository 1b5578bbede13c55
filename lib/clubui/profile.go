// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

// profileSection selects which part of the profile page is active.
type profileSection int

const (
	sectionView profileSection = iota
	sectionEdit
	sectionPassword
)

// profilePage shows the caller's account and edits contact fields or
// the password. Contact edits and password changes are separate
// forms; Tab cycles between viewing, editing, and the password form.
type profilePage struct {
	deps *Deps

	profile *api.Profile
	section profileSection

	// Edit form: first name, last name, email, phone, birth date.
	editInputs []textinput.Model
	editFocus  int

	// Password form: current, new, confirmation.
	passwordInputs []textinput.Model
	passwordFocus  int
}

// loadProfilePage is the router loader for the profile page.
func loadProfilePage(deps *Deps) PageLoader {
	return func(ctx context.Context) (pageModel, error) {
		profile, err := deps.Client.Profile(ctx)
		if err != nil {
			return nil, err
		}
		return newProfilePage(deps, profile), nil
	}
}

func newProfilePage(deps *Deps, profile *api.Profile) *profilePage {
	page := &profilePage{deps: deps, profile: profile}

	editLabels := []string{"Имя", "Фамилия", "Email", "Телефон", "Дата рождения"}
	editValues := []string{profile.FirstName, profile.LastName, profile.Email, profile.Phone, profile.BirthDate}
	for index, label := range editLabels {
		input := textinput.New()
		input.Prompt = label + ": "
		input.SetValue(editValues[index])
		input.CharLimit = 100
		page.editInputs = append(page.editInputs, input)
	}

	for _, label := range []string{"Текущий пароль", "Новый пароль", "Повторите пароль"} {
		input := textinput.New()
		input.Prompt = label + ": "
		input.EchoMode = textinput.EchoPassword
		input.CharLimit = 100
		page.passwordInputs = append(page.passwordInputs, input)
	}
	return page
}

func (page *profilePage) title() string { return pageTitle("profile") }

func (page *profilePage) update(message tea.Msg, keys KeyMap) (pageModel, tea.Cmd) {
	keyMessage, isKey := message.(tea.KeyMsg)
	if !isKey {
		return page, nil
	}

	switch page.section {
	case sectionView:
		switch {
		case key.Matches(keyMessage, keys.NextSection), key.Matches(keyMessage, keys.Action):
			page.section = sectionEdit
			page.editFocus = 0
			page.focusEditInput()
		case keyMessage.String() == "p":
			page.section = sectionPassword
			page.passwordFocus = 0
			page.focusPasswordInput()
		}
		return page, nil

	case sectionEdit:
		return page.updateEditForm(keyMessage, keys)

	case sectionPassword:
		return page.updatePasswordForm(keyMessage, keys)
	}
	return page, nil
}

func (page *profilePage) focusEditInput() {
	for index := range page.editInputs {
		if index == page.editFocus {
			page.editInputs[index].Focus()
		} else {
			page.editInputs[index].Blur()
		}
	}
}

func (page *profilePage) focusPasswordInput() {
	for index := range page.passwordInputs {
		if index == page.passwordFocus {
			page.passwordInputs[index].Focus()
		} else {
			page.passwordInputs[index].Blur()
		}
	}
}

func (page *profilePage) updateEditForm(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		page.section = sectionView
		return page, nil
	case tea.KeyTab, tea.KeyDown:
		page.editFocus = (page.editFocus + 1) % len(page.editInputs)
		page.focusEditInput()
		return page, nil
	case tea.KeyShiftTab, tea.KeyUp:
		page.editFocus = (page.editFocus + len(page.editInputs) - 1) % len(page.editInputs)
		page.focusEditInput()
		return page, nil
	case tea.KeyEnter:
		return page, page.saveProfile()
	}

	var cmd tea.Cmd
	page.editInputs[page.editFocus], cmd = page.editInputs[page.editFocus].Update(message)
	return page, cmd
}

func (page *profilePage) updatePasswordForm(message tea.KeyMsg, keys KeyMap) (pageModel, tea.Cmd) {
	switch message.Type {
	case tea.KeyEscape:
		page.section = sectionView
		return page, nil
	case tea.KeyTab, tea.KeyDown:
		page.passwordFocus = (page.passwordFocus + 1) % len(page.passwordInputs)
		page.focusPasswordInput()
		return page, nil
	case tea.KeyShiftTab, tea.KeyUp:
		page.passwordFocus = (page.passwordFocus + len(page.passwordInputs) - 1) % len(page.passwordInputs)
		page.focusPasswordInput()
		return page, nil
	case tea.KeyEnter:
		return page, page.changePassword()
	}

	var cmd tea.Cmd
	page.passwordInputs[page.passwordFocus], cmd = page.passwordInputs[page.passwordFocus].Update(message)
	return page, cmd
}

func (page *profilePage) saveProfile() tea.Cmd {
	request := api.UpdateProfileRequest{
		FirstName: page.editInputs[0].Value(),
		LastName:  page.editInputs[1].Value(),
		Email:     page.editInputs[2].Value(),
		Phone:     page.editInputs[3].Value(),
		BirthDate: page.editInputs[4].Value(),
	}
	if err := session.ValidateEmail(request.Email); err != nil {
		return notify(err.Error(), noticeError)
	}

	client := page.deps.Client
	return func() tea.Msg {
		if _, err := client.UpdateProfile(context.Background(), request); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: "Профиль обновлен", reload: true}
	}
}

// changePassword validates locally first: the minimum length and the
// confirmation match are checked before any network call.
func (page *profilePage) changePassword() tea.Cmd {
	current := page.passwordInputs[0].Value()
	next := page.passwordInputs[1].Value()
	confirmation := page.passwordInputs[2].Value()

	if err := session.ValidatePasswordPair(next, confirmation); err != nil {
		return notify(err.Error(), noticeError)
	}

	client := page.deps.Client
	return func() tea.Msg {
		if err := client.ChangePassword(context.Background(), current, next); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{notice: "Пароль изменен", reload: true}
	}
}

func (page *profilePage) view(theme Theme, width, height int) string {
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	roleStyle := lipgloss.NewStyle().Foreground(theme.RoleColor(page.profile.Role))

	var lines []string
	switch page.section {
	case sectionView:
		lines = append(lines, headerStyle.Render(page.profile.Username)+"  "+roleStyle.Render(roleLabel(page.profile.Role)))
		lines = append(lines, "")
		lines = append(lines, faintStyle.Render("Имя:           ")+page.profile.FirstName+" "+page.profile.LastName)
		lines = append(lines, faintStyle.Render("Email:         ")+page.profile.Email)
		if page.profile.Phone != "" {
			lines = append(lines, faintStyle.Render("Телефон:       ")+page.profile.Phone)
		}
		if page.profile.BirthDate != "" {
			lines = append(lines, faintStyle.Render("Дата рождения: ")+page.profile.BirthDate)
		}
		if page.profile.CreatedAt != "" {
			lines = append(lines, faintStyle.Render("Регистрация:   ")+formatDate(page.profile.CreatedAt))
		}
		lines = append(lines, "", faintStyle.Render("Tab — редактировать, p — сменить пароль"))

	case sectionEdit:
		lines = append(lines, headerStyle.Render("Редактирование профиля"), "")
		for index := range page.editInputs {
			lines = append(lines, page.editInputs[index].View())
		}
		lines = append(lines, "", faintStyle.Render("Enter — сохранить, Esc — отмена"))

	case sectionPassword:
		lines = append(lines, headerStyle.Render("Смена пароля"), "")
		for index := range page.passwordInputs {
			lines = append(lines, page.passwordInputs[index].View())
		}
		lines = append(lines, "", faintStyle.Render("Enter — сменить, Esc — отмена"))
	}
	return strings.Join(lines, "\n")
}
