package service

import (
	"context"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
)

type appInfoService struct {
	version string
	build   models.AppBuildInfo
}

// NewAppInfoService reports the configured version, falling back to the
// version linked into the binary.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	version := cfg.Version
	if version == "" {
		version = build.BuildVersion()
	}
	if version == "" || version == "N/A" {
		logger.Error().Str("func", "NewAppInfoService").Msg("no app version configured")
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{version: version, build: build}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.version
}
