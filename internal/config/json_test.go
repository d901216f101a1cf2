package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseJSON_FullFile verifies that every section maps into the config.
func TestParseJSON_FullFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{
			"token_sign_key": "key",
			"token_duration": "12h",
			"version":        "1.2.3",
		},
		"storage": map[string]any{
			"db":      map[string]any{"dsn": "postgres://db"},
			"redis":   map[string]any{"url": "redis://r:6379/1", "cache_ttl": "1m"},
			"objects": map[string]any{"bucket": "media", "use_path_style": true},
		},
		"server": map[string]any{"http_address": ":8080", "request_timeout": "3s"},
		"adapter": map[string]any{
			"translation": map[string]any{"base_url": "http://translate", "api_key": "tk"},
			"ffmpeg_path": "/usr/bin/ffmpeg",
		},
		"workers": map[string]any{"translation_quota": 5, "temp_max_age": "48h"},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.App.TokenSignKey)
	assert.Equal(t, 12*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "postgres://db", cfg.Storage.DB.DSN)
	assert.Equal(t, "redis://r:6379/1", cfg.Storage.Redis.URL)
	assert.Equal(t, time.Minute, cfg.Storage.Redis.CacheTTL)
	assert.Equal(t, "media", cfg.Storage.Objects.Bucket)
	assert.True(t, cfg.Storage.Objects.UsePathStyle)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, Endpoint{BaseURL: "http://translate", APIKey: "tk"}, cfg.Adapter.Translation)
	assert.Equal(t, "/usr/bin/ffmpeg", cfg.Adapter.FFmpegPath)
	assert.Equal(t, 5, cfg.Workers.TranslationQuota)
	assert.Equal(t, 48*time.Hour, cfg.Workers.TempMaxAge)
}

// TestParseJSON_MalformedFile verifies that broken JSON is an error.
func TestParseJSON_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := parseJSON(path)
	assert.Error(t, err)
}

// TestParseJSON_InvalidDuration verifies that an unparsable duration is an error.
func TestParseJSON_InvalidDuration(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"request_timeout": "soon"},
	})

	_, err := parseJSON(path)
	assert.Error(t, err)
}

// TestDuration_JSON covers string, numeric and invalid duration encodings.
func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"90s"`), &d))
	assert.Equal(t, 90*time.Second, time.Duration(d))

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, time.Duration(d))

	assert.Error(t, json.Unmarshal([]byte(`true`), &d))

	out, err := json.Marshal(Duration(time.Minute))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m0s"`, string(out))
}
