package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── NewAppInfoService ─────────────────────────────────────────────────────────

// TestNewAppInfoService_ConfiguredVersionWins verifies the configured version
// takes precedence over the linked one.
func TestNewAppInfoService_ConfiguredVersionWins(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "3.1.4"}, models.NewAppBuildInfo("0.0.1", "", ""), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", svc.GetAppVersion(context.Background()))
}

// TestNewAppInfoService_FallsBackToBuildVersion verifies the linker-provided
// version is used when nothing is configured.
func TestNewAppInfoService_FallsBackToBuildVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{}, models.NewAppBuildInfo("v1.2.3-beta+build.42", "", ""), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3-beta+build.42", svc.GetAppVersion(context.Background()))
}

// TestNewAppInfoService_NoVersion verifies that a missing version is an error.
func TestNewAppInfoService_NoVersion(t *testing.T) {
	for _, build := range []string{"", "N/A"} {
		svc, err := NewAppInfoService(config.App{}, models.NewAppBuildInfo(build, "", ""), logger.Nop())
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
	}
}
