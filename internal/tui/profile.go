// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	actionSignOut        = "sign-out"
	actionUpdateSettings = "update-settings"

	statusTimeout = 2 * time.Second
)

// ProfileModel shows the signed-in user's profile as the session publishes
// it, including pushes from the server's profile stream. Settings toggles are
// sent as partial patches and the page re-renders from the next published
// state rather than from the patch.
type ProfileModel struct {
	ctx     context.Context
	session service.ClientSession

	state       models.SessionState
	status      string
	errMsg      string
	busy        bool
	showConfirm bool
	confirm     confirmModel
}

func NewProfileModel(ctx context.Context, session service.ClientSession) *ProfileModel {
	return &ProfileModel{
		ctx:     ctx,
		session: session,
		state:   session.State(),
		confirm: confirmModel{message: "Выйти из аккаунта?"},
	}
}

func (m *ProfileModel) Init() tea.Cmd {
	return nil
}

func (m *ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionStateMsg:
		m.state = msg.State
		if !m.state.Authenticated() {
			m.busy = false
			m.showConfirm = false
			m.status = ""
			m.errMsg = ""
		}
		return m, nil
	case ActionResult:
		if msg.Action != actionUpdateSettings && msg.Action != actionSignOut {
			return m, nil
		}
		m.busy = false
		if msg.Err != nil {
			m.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		m.errMsg = ""
		if msg.Action == actionUpdateSettings {
			m.status = "Настройки сохранены"
			return m, cmdClearStatus()
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Не удалось скопировать: " + msg.err.Error()
			return m, nil
		}
		m.status = "Скопировано!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *ProfileModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showConfirm {
		switch {
		case keyMatches(msg, keys.yes):
			m.showConfirm = false
			m.busy = true
			return m, m.cmdSignOut()
		case keyMatches(msg, keys.no), keyMatches(msg, keys.esc):
			m.showConfirm = false
		}
		return m, nil
	}

	user := m.state.User
	if user == nil || m.busy {
		return m, nil
	}

	switch {
	case keyMatches(msg, keys.edit):
		return m, func() tea.Msg {
			return NavigateTo{Page: pageProfileEdit, Payload: editProfileMsg{profile: *user}}
		}
	case keyMatches(msg, keys.copy):
		return m, cmdCopyToClipboard(user.UID)
	case keyMatches(msg, keys.logout):
		m.showConfirm = true
		return m, nil
	case keyMatches(msg, keys.theme):
		return m.toggle(toggleTheme)
	case keyMatches(msg, keys.online):
		return m.toggle(toggleOnlineStatus)
	case keyMatches(msg, keys.contrast):
		return m.toggle(toggleHighContrast)
	}

	return m, nil
}

func (m *ProfileModel) toggle(t settingToggle) (tea.Model, tea.Cmd) {
	m.busy = true
	return m, m.cmdUpdateSettings(settingsToggle(m.state.User.Settings, t))
}

type settingToggle int

const (
	toggleTheme settingToggle = iota
	toggleOnlineStatus
	toggleHighContrast
)

// settingsToggle builds the partial settings patch flipping one setting.
func settingsToggle(current models.UserSettings, t settingToggle) models.SettingsPatch {
	switch t {
	case toggleTheme:
		mode := models.ThemeDark
		if current.Theme.Mode == models.ThemeDark {
			mode = models.ThemeLight
		}
		return models.SettingsPatch{"theme": map[string]any{"mode": string(mode)}}
	case toggleOnlineStatus:
		return models.SettingsPatch{"privacy": map[string]any{"showOnlineStatus": !current.Privacy.ShowOnlineStatus}}
	case toggleHighContrast:
		return models.SettingsPatch{"accessibility": map[string]any{"highContrast": !current.Accessibility.HighContrast}}
	}
	return models.SettingsPatch{}
}

func (m *ProfileModel) View() string {
	user := m.state.User
	if user == nil {
		return renderPage("ПРОФИЛЬ", "Вход не выполнен", "")
	}

	var b strings.Builder
	rows := [][2]string{
		{"UID", user.UID},
		{"Email", user.Email},
		{"Имя", user.DisplayName},
		{"Фото", user.PhotoURL},
		{"Статус", string(user.Status)},
		{"О себе", user.Bio},
		{"Город", user.Location},
		{"Тема", string(user.Settings.Theme.Mode)},
		{"Язык", user.Settings.Language},
		{"Онлайн-статус", onOff(user.Settings.Privacy.ShowOnlineStatus)},
		{"Контраст", onOff(user.Settings.Accessibility.HighContrast)},
		{"Переводов", fmt.Sprintf("%d", user.Settings.Translation.UsageCount)},
	}
	for _, row := range rows {
		b.WriteString(padRight(row[0], 14))
		b.WriteString(" │ ")
		b.WriteString(fitText(valueOrDash(&row[1]), 48))
		b.WriteString("\n")
	}

	if m.busy || m.state.Loading {
		b.WriteString("\n[Сохранение...]\n")
	}
	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}
	if m.showConfirm {
		b.WriteString("\n")
		b.WriteString(m.confirm.View())
	}

	return renderPage("ПРОФИЛЬ", strings.TrimRight(b.String(), "\n"),
		"e: изменить │ t: тема │ o: онлайн-статус │ h: контраст │ c: копировать UID │ l: выйти │ v: версия")
}

func (m *ProfileModel) cmdUpdateSettings(patch models.SettingsPatch) tea.Cmd {
	ctx := m.ctx
	session := m.session

	return func() tea.Msg {
		return ActionResult{Action: actionUpdateSettings, Err: session.UpdateSettings(ctx, patch)}
	}
}

func (m *ProfileModel) cmdSignOut() tea.Cmd {
	ctx := m.ctx
	session := m.session

	return func() tea.Msg {
		return ActionResult{Action: actionSignOut, Err: session.SignOut(ctx)}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func onOff(v bool) string {
	if v {
		return "вкл"
	}
	return "выкл"
}
