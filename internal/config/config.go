// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the chat
// server. It is populated by merging defaults, an optional .env file,
// environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, webhook and sealing secrets, version and
	// log level.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database, Redis and object storage
	// settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and timeouts of the HTTP and gRPC
	// servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds endpoints and credentials of the outbound integrations
	// (identity provider, push, translation) and the client's server address.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds janitor schedules and translation quota settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file merged
	// on top of the other sources. Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level values controlling tokens and secrets.
type App struct {
	// TokenSignKey signs and verifies session JWTs. Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued token. Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the session token lifetime. Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// WebhookKey is the HMAC key verifying the HashSHA256 header of identity
	// and storage webhooks. Env: APP_WEBHOOK_KEY
	WebhookKey string `env:"WEBHOOK_KEY"`

	// SecretPassphrase derives the key sealing user-supplied translation
	// keys at rest. Env: APP_SECRET_PASSPHRASE
	SecretPassphrase string `env:"SECRET_PASSPHRASE"`

	// Version is reported by GET /api/version. Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name (debug, info, warn...). Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the configuration of all storage backends.
type Storage struct {
	DB      DB      `envPrefix:"DB_"`
	Redis   Redis   `envPrefix:"REDIS_"`
	Objects Objects `envPrefix:"OBJECTS_"`
}

// DB holds connection settings of the relational database.
type DB struct {
	// DSN is the PostgreSQL connection string for the server and the SQLite
	// file path for the client. Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Redis holds the cache connection and key lifetimes.
type Redis struct {
	// URL in redis://[:password@]host:port/db form. Env: STORAGE_REDIS_URL
	URL string `env:"URL"`

	// CacheTTL is the lifetime of cached profiles. Env: STORAGE_REDIS_CACHE_TTL
	CacheTTL time.Duration `env:"CACHE_TTL"`

	// DedupTTL is how long processed event ids are remembered.
	// Env: STORAGE_REDIS_DEDUP_TTL
	DedupTTL time.Duration `env:"DEDUP_TTL"`
}

// Objects holds S3-compatible object storage settings of the media bucket.
type Objects struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"USE_PATH_STYLE"`
}

// Server holds network and timeout settings of the inbound transports.
type Server struct {
	// HTTPAddress in host:port form. Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress of the health service. Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request. Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds outbound integration settings.
type Adapter struct {
	Identity    Endpoint `envPrefix:"IDENTITY_"`
	Push        Endpoint `envPrefix:"PUSH_"`
	Translation Endpoint `envPrefix:"TRANSLATION_"`

	// HTTPAddress is the chat server address used by the terminal client.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request. Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// FFmpegPath is the ffmpeg binary used for video frames. Env: ADAPTER_FFMPEG_PATH
	FFmpegPath string `env:"FFMPEG_PATH"`
}

// Endpoint is a base URL plus API key of an external HTTP service.
type Endpoint struct {
	BaseURL string `env:"BASE_URL"`
	APIKey  string `env:"API_KEY"`
}

// Workers holds background job configuration.
type Workers struct {
	// TempSweepInterval is how often temp/ objects are swept.
	// Env: WORKERS_TEMP_SWEEP_INTERVAL
	TempSweepInterval time.Duration `env:"TEMP_SWEEP_INTERVAL"`

	// TempMaxAge is the age after which temp/ objects are deleted.
	// Env: WORKERS_TEMP_MAX_AGE
	TempMaxAge time.Duration `env:"TEMP_MAX_AGE"`

	// StorySweepInterval is how often expired stories are deleted.
	// Env: WORKERS_STORY_SWEEP_INTERVAL
	StorySweepInterval time.Duration `env:"STORY_SWEEP_INTERVAL"`

	// TranslationQuota is the number of server-paid translations a user gets
	// per TranslationWindow. Env: WORKERS_TRANSLATION_QUOTA
	TranslationQuota int `env:"TRANSLATION_QUOTA"`

	// TranslationWindow is the quota reset period. Env: WORKERS_TRANSLATION_WINDOW
	TranslationWindow time.Duration `env:"TRANSLATION_WINDOW"`
}

// defaultConfig holds the values used when no source sets a field.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-chat-core",
			TokenDuration: 24 * time.Hour,
			LogLevel:      "debug",
		},
		Storage: Storage{
			Redis: Redis{
				CacheTTL: 10 * time.Minute,
				DedupTTL: 24 * time.Hour,
			},
			Objects: Objects{
				Region: "us-east-1",
			},
		},
		Server: Server{
			RequestTimeout: 15 * time.Second,
		},
		Adapter: Adapter{
			Identity:       Endpoint{BaseURL: "https://identitytoolkit.googleapis.com"},
			Push:           Endpoint{BaseURL: "https://fcm.googleapis.com"},
			Translation:    Endpoint{BaseURL: "https://translation.googleapis.com"},
			RequestTimeout: 10 * time.Second,
			FFmpegPath:     "ffmpeg",
		},
		Workers: Workers{
			TempSweepInterval:  24 * time.Hour,
			TempMaxAge:         24 * time.Hour,
			StorySweepInterval: time.Hour,
			TranslationQuota:   1000,
			TranslationWindow:  30 * 24 * time.Hour,
		},
	}
}

// GetStructuredConfig loads, merges and validates the server configuration.
// Sources in priority order (later non-zero values win):
//  1. built-in defaults
//  2. .env file (path from ENV_FILE, default ".env"; missing file is fine)
//  3. environment variables
//  4. command-line flags
//  5. JSON file (path resolved from sources 3 and 4)
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withDotEnv(dotEnvPath()).
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	return cfg, nil
}

func dotEnvPath() string {
	if p := os.Getenv("ENV_FILE"); p != "" {
		return p
	}
	return ".env"
}
