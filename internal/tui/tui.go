package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/models"
	tea "github.com/charmbracelet/bubbletea"
)

// TUI runs the terminal interface on top of the client services.
type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.Session == nil {
		return nil, errors.New("tui: client session is required")
	}

	return &TUI{services: services, buildInfo: buildInfo, logger: logger}, nil
}

// Pages builds the page set of the interface.
func (t *TUI) Pages(ctx context.Context) map[string]tea.Model {
	session := t.services.Session

	return map[string]tea.Model{
		pageMenu:        NewMenuModel(),
		pageLogin:       NewLoginModel(ctx, session),
		pageRegister:    NewRegisterModel(ctx, session),
		pageProvider:    NewProviderModel(ctx, session),
		pageProfile:     NewProfileModel(ctx, session),
		pageProfileEdit: NewProfileEditModel(ctx, session),
	}
}

// Run blocks until the user quits. Session state changes are forwarded into
// the program for as long as it runs.
func (t *TUI) Run(ctx context.Context) error {
	start := pageMenu
	if t.services.Session.State().Authenticated() {
		start = pageProfile
	}

	root := NewRootModel(ctx, t.services.AppInfo, t.Pages(ctx), start, t.buildInfo)
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := t.services.Session.Subscribe(func(state models.SessionState) {
		program.Send(SessionStateMsg{State: state})
	})
	defer unsubscribe()

	finalModel, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		t.logger.Info().Msg("user left the client")
		return ErrUserQuit
	}

	return nil
}
