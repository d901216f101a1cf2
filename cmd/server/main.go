package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/adapter"
	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/crypto"
	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/handler"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/media"
	"github.com/MKhiriev/go-chat-core/internal/server"
	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/internal/store"
	"github.com/MKhiriev/go-chat-core/internal/workers"
	"github.com/MKhiriev/go-chat-core/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const (
	// eventHandlerTimeout bounds one event subscriber run. Video thumbnails
	// are the slowest.
	eventHandlerTimeout = time.Minute

	healthCheckInterval = 15 * time.Second
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-chat-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Warn().Err(err).Str("level", cfg.App.LogLevel).Msg("unknown log level, keeping debug")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	sealer, err := newSealer(cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating secret sealer")
	}

	bus := events.NewBus(eventHandlerTimeout, log)

	externals := service.Externals{
		Identity:   adapter.NewIdentityAdapter(cfg.Adapter.Identity, cfg.Adapter, log),
		Push:       adapter.NewPushAdapter(cfg.Adapter.Push, cfg.Adapter, log),
		Translator: adapter.NewTranslateAdapter(cfg.Adapter.Translation, cfg.Adapter, log),
		Frames:     media.NewFFmpegExtractor(cfg.Adapter.FFmpegPath, log),
	}

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, externals, bus, sealer, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}
	services.Subscribe(bus)

	handlers, err := handler.NewHandlers(services, bus, storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	jobs := services.Jobs(cfg.Workers, log)
	if handlers.GRPC != nil {
		jobs = append(jobs, workers.NewPeriodicJob("health-check", healthCheckInterval, func(ctx context.Context, _ time.Time) error {
			handlers.GRPC.RunChecks(ctx)
			return nil
		}, log))
		handlers.GRPC.RunChecks(ctx)
	}
	background := workers.NewWorkers(jobs...)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.OnShutdown("workers", func(context.Context) error {
		background.Stop()
		return nil
	})
	if handlers.HTTP != nil {
		srv.OnShutdown("profile-streams", func(context.Context) error {
			handlers.HTTP.Hub().Close()
			return nil
		})
	}
	srv.OnShutdown("event-bus", bus.Close)
	srv.OnShutdown("storages", func(context.Context) error {
		return storages.Close()
	})

	background.Run(ctx)
	srv.RunServer()
}

// newSealer derives the key of stored user secrets from the configured
// passphrase. Without one, secrets sealed by this process cannot be opened
// after a restart.
func newSealer(cfg config.App, log *logger.Logger) (crypto.Sealer, error) {
	if cfg.SecretPassphrase == "" {
		log.Warn().Msg("no secret passphrase configured, using an ephemeral key")
		return crypto.NewEphemeralSealer()
	}
	return crypto.NewSecretSealer(cfg.SecretPassphrase)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
