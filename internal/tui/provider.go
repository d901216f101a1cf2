package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const actionProviderSignIn = "provider-sign-in"

type provider struct {
	name       string
	tokenLabel string
	signIn     func(ctx context.Context, session service.ClientSession, token string) error
}

var providers = []provider{
	{
		name:       "Google",
		tokenLabel: "ID token",
		signIn: func(ctx context.Context, session service.ClientSession, token string) error {
			return session.SignInWithGoogle(ctx, token)
		},
	},
	{
		name:       "Facebook",
		tokenLabel: "Access token",
		signIn: func(ctx context.Context, session service.ClientSession, token string) error {
			return session.SignInWithFacebook(ctx, token)
		},
	},
}

// ProviderModel signs in with a token obtained from an external identity
// provider. The terminal cannot run the provider's browser flow, so the user
// pastes the token the provider issued.
type ProviderModel struct {
	ctx     context.Context
	session service.ClientSession

	idx        int
	form       form
	submitting bool
	errMsg     string
}

func NewProviderModel(ctx context.Context, session service.ClientSession) *ProviderModel {
	return &ProviderModel{
		ctx:     ctx,
		session: session,
		form:    newForm(formField{label: "Токен", placeholder: "token"}),
	}
}

func (m *ProviderModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ProviderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(ActionResult); ok && result.Action == actionProviderSignIn {
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
		case "up":
			if m.idx > 0 {
				m.idx--
			}
			return m, nil
		case "down":
			if m.idx < len(providers)-1 {
				m.idx++
			}
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			token := m.form.value(0)
			if token == "" {
				m.errMsg = "Токен обязателен"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdSignIn(providers[m.idx], token)
		}
	}

	return m, m.form.update(msg)
}

func (m *ProviderModel) View() string {
	var b strings.Builder
	for i, p := range providers {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s (%s)\n", cursor, p.name, p.tokenLabel))
	}
	b.WriteString("\n")
	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Войти через " + providers[m.idx].name + "...]\n")
	} else {
		b.WriteString("\n[Войти через " + providers[m.idx].name + "]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\nОшибка: ")
		b.WriteString(m.errMsg)
		b.WriteString("\n")
	}

	return renderPage("ВХОД ЧЕРЕЗ ПРОВАЙДЕРА", strings.TrimRight(b.String(), "\n"), "esc: назад │ ↑/↓: провайдер │ enter: подтвердить")
}

func (m *ProviderModel) cmdSignIn(p provider, token string) tea.Cmd {
	ctx := m.ctx
	session := m.session

	return func() tea.Msg {
		return ActionResult{Action: actionProviderSignIn, Err: p.signIn(ctx, session, token)}
	}
}
