package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	actionSignUp = "sign-up"

	minPasswordLength = 6
)

// RegisterModel is the Bubble Tea model for the sign-up screen. A successful
// sign-up also signs the user in, so [RootModel] moves on to the profile page
// as soon as the session state reports the new user.
type RegisterModel struct {
	ctx     context.Context
	session service.ClientSession

	form       form
	submitting bool
	errMsg     string
}

// NewRegisterModel creates a [RegisterModel] with display name, email,
// password and password confirmation inputs.
func NewRegisterModel(ctx context.Context, session service.ClientSession) *RegisterModel {
	return &RegisterModel{
		ctx:     ctx,
		session: session,
		form: newForm(
			formField{label: "Имя", placeholder: "display name", limit: 64},
			formField{label: "Email", placeholder: "email", limit: 254},
			formField{label: "Пароль", placeholder: "password", secret: true, limit: 256},
			formField{label: "Повтор", placeholder: "repeat password", secret: true, limit: 256},
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. All inputs except the display name are
// required and both passwords must match before the sign-up is dispatched.
func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(ActionResult); ok && result.Action == actionSignUp {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeError(result.Err)
			return m, nil
		}
		m.errMsg = ""
		m.form.reset()
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, navigate(pageMenu)
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
			return m, m.submit()
		}
	}

	return m, m.form.update(msg)
}

func (m *RegisterModel) submit() tea.Cmd {
	name := m.form.value(0)
	email := m.form.value(1)
	pass := m.form.value(2)
	repeat := m.form.value(3)

	switch {
	case email == "" || pass == "":
		m.errMsg = "Email и пароль обязательны"
		return nil
	case len(pass) < minPasswordLength:
		m.errMsg = "Пароль слишком короткий"
		return nil
	case pass != repeat:
		m.errMsg = "Пароли не совпадают"
		return nil
	}

	m.errMsg = ""
	m.submitting = true

	ctx := m.ctx
	session := m.session
	return func() tea.Msg {
		return ActionResult{Action: actionSignUp, Err: session.SignUp(ctx, email, pass, name)}
	}
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Зарегистрироваться...]\n")
	} else {
		b.WriteString("\n[Зарегистрироваться]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("РЕГИСТРАЦИЯ", strings.TrimRight(b.String(), "\n"), "esc: назад │ tab: след. поле │ enter: подтвердить")
}
