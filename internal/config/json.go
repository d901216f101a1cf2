package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout. Durations are written as
// strings ("15s", "24h").
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		WebhookKey       string   `json:"webhook_key"`
		SecretPassphrase string   `json:"secret_passphrase"`
		Version          string   `json:"version"`
		LogLevel         string   `json:"log_level"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
		Redis struct {
			URL      string   `json:"url"`
			CacheTTL Duration `json:"cache_ttl"`
			DedupTTL Duration `json:"dedup_ttl"`
		} `json:"redis"`
		Objects struct {
			Bucket          string `json:"bucket"`
			Region          string `json:"region"`
			Endpoint        string `json:"endpoint"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
			UsePathStyle    bool   `json:"use_path_style"`
		} `json:"objects"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`

	Adapter struct {
		Identity       jsonEndpoint `json:"identity"`
		Push           jsonEndpoint `json:"push"`
		Translation    jsonEndpoint `json:"translation"`
		HTTPAddress    string       `json:"http_address"`
		RequestTimeout Duration     `json:"request_timeout"`
		FFmpegPath     string       `json:"ffmpeg_path"`
	} `json:"adapter"`

	Workers struct {
		TempSweepInterval  Duration `json:"temp_sweep_interval"`
		TempMaxAge         Duration `json:"temp_max_age"`
		StorySweepInterval Duration `json:"story_sweep_interval"`
		TranslationQuota   int      `json:"translation_quota"`
		TranslationWindow  Duration `json:"translation_window"`
	} `json:"workers"`
}

type jsonEndpoint struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:     j.App.TokenSignKey,
			TokenIssuer:      j.App.TokenIssuer,
			TokenDuration:    time.Duration(j.App.TokenDuration),
			WebhookKey:       j.App.WebhookKey,
			SecretPassphrase: j.App.SecretPassphrase,
			Version:          j.App.Version,
			LogLevel:         j.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{DSN: j.Storage.DB.DSN},
			Redis: Redis{
				URL:      j.Storage.Redis.URL,
				CacheTTL: time.Duration(j.Storage.Redis.CacheTTL),
				DedupTTL: time.Duration(j.Storage.Redis.DedupTTL),
			},
			Objects: Objects{
				Bucket:          j.Storage.Objects.Bucket,
				Region:          j.Storage.Objects.Region,
				Endpoint:        j.Storage.Objects.Endpoint,
				AccessKeyID:     j.Storage.Objects.AccessKeyID,
				SecretAccessKey: j.Storage.Objects.SecretAccessKey,
				UsePathStyle:    j.Storage.Objects.UsePathStyle,
			},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Adapter: Adapter{
			Identity:       Endpoint(j.Adapter.Identity),
			Push:           Endpoint(j.Adapter.Push),
			Translation:    Endpoint(j.Adapter.Translation),
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
			FFmpegPath:     j.Adapter.FFmpegPath,
		},
		Workers: Workers{
			TempSweepInterval:  time.Duration(j.Workers.TempSweepInterval),
			TempMaxAge:         time.Duration(j.Workers.TempMaxAge),
			StorySweepInterval: time.Duration(j.Workers.StorySweepInterval),
			TranslationQuota:   j.Workers.TranslationQuota,
			TranslationWindow:  time.Duration(j.Workers.TranslationWindow),
		},
	}, nil
}

// Duration is a time.Duration that unmarshals from JSON strings like "1h" as
// well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
