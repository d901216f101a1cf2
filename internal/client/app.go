package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/internal/tui"
)

// UI is the interactive front end driven by [App].
type UI interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	ui       UI
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, logger *logger.Logger) (*App, error) {
	if services == nil || services.Session == nil {
		return nil, errors.New("client services are required")
	}
	if ui == nil {
		return nil, errors.New("ui is required")
	}

	return &App{services: services, ui: ui, logger: logger}, nil
}

// Run resumes the saved session, hands control to the UI and closes the
// session once the UI returns. A failed restore is logged and the user
// starts signed out.
func (a *App) Run(ctx context.Context) error {
	defer a.services.Session.Close()

	if err := a.services.Session.Restore(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("could not restore saved session")
	} else if a.services.Session.State().Authenticated() {
		a.logger.Info().Msg("saved session restored")
	}

	err := a.ui.Run(ctx)
	switch {
	case err == nil, errors.Is(err, tui.ErrUserQuit), errors.Is(err, context.Canceled):
		return nil
	default:
		return fmt.Errorf("ui: %w", err)
	}
}
