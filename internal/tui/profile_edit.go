package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const actionUpdateProfile = "update-profile"

// editProfileMsg opens [ProfileEditModel] pre-filled with profile.
type editProfileMsg struct {
	profile models.UserProfile
}

// ProfileEditModel edits the user-editable profile fields. Only changed
// fields are sent: an empty patch field means "leave unchanged".
type ProfileEditModel struct {
	ctx     context.Context
	session service.ClientSession

	original   models.UserProfile
	form       form
	submitting bool
	errMsg     string
}

func NewProfileEditModel(ctx context.Context, session service.ClientSession) *ProfileEditModel {
	return &ProfileEditModel{
		ctx:     ctx,
		session: session,
		form: newForm(
			formField{label: "Имя", placeholder: "display name", limit: 64},
			formField{label: "Фото", placeholder: "https://...", limit: 512},
			formField{label: "О себе", placeholder: "bio", limit: 280},
			formField{label: "Город", placeholder: "location", limit: 64},
			formField{label: "Сайт", placeholder: "https://...", limit: 256},
		),
	}
}

func (m *ProfileEditModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ProfileEditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editProfileMsg:
		m.load(msg.profile)
		return m, textinput.Blink
	case ActionResult:
		if msg.Action != actionUpdateProfile {
			return m, nil
		}
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		m.errMsg = ""
		return m, navigate(pageProfile)
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, navigate(pageProfile)
		case "tab":
			m.form.focusNext()
			return m, nil
		case "shift+tab":
			m.form.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			patch := m.patch()
			if patch == (models.ProfilePatch{}) {
				return m, navigate(pageProfile)
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdUpdateProfile(patch)
		}
	}

	return m, m.form.update(msg)
}

func (m *ProfileEditModel) load(profile models.UserProfile) {
	m.original = profile
	m.errMsg = ""
	m.submitting = false
	m.form.reset()
	m.form.inputs[0].SetValue(profile.DisplayName)
	m.form.inputs[1].SetValue(profile.PhotoURL)
	m.form.inputs[2].SetValue(profile.Bio)
	m.form.inputs[3].SetValue(profile.Location)
	m.form.inputs[4].SetValue(profile.Website)
}

// patch keeps only the values that differ from the loaded profile.
func (m *ProfileEditModel) patch() models.ProfilePatch {
	changed := func(i int, old string) string {
		if v := m.form.value(i); v != old {
			return v
		}
		return ""
	}

	var p models.ProfilePatch
	p.DisplayName = changed(0, m.original.DisplayName)
	p.PhotoURL = changed(1, m.original.PhotoURL)
	p.Bio = changed(2, m.original.Bio)
	p.Location = changed(3, m.original.Location)
	p.Website = changed(4, m.original.Website)
	return p
}

func (m *ProfileEditModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Сохранить...]\n")
	} else {
		b.WriteString("\n[Сохранить]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("РЕДАКТИРОВАНИЕ ПРОФИЛЯ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: сохранить")
}

func (m *ProfileEditModel) cmdUpdateProfile(patch models.ProfilePatch) tea.Cmd {
	ctx := m.ctx
	session := m.session

	return func() tea.Msg {
		return ActionResult{Action: actionUpdateProfile, Err: session.UpdateProfile(ctx, patch)}
	}
}
