package adapter

import (
	"context"
	"html"
	"strings"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/utils"
)

const translationService = "translation"

type translateAdapter struct {
	client *utils.HTTPClient
	apiKey string
	logger *logger.Logger
}

// NewTranslateAdapter constructs a [Translator] for the v2 translate API.
func NewTranslateAdapter(endpoint config.Endpoint, cfg config.Adapter, logger *logger.Logger) Translator {
	return &translateAdapter{
		client: utils.NewHTTPClient(strings.TrimRight(endpoint.BaseURL, "/"), cfg.RequestTimeout),
		apiKey: endpoint.APIKey,
		logger: logger,
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate implements [Translator].
func (a *translateAdapter) Translate(ctx context.Context, text, target, apiKey string) (string, error) {
	if apiKey == "" {
		apiKey = a.apiKey
	}

	var result translateResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("key", apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(translateRequest{Q: text, Target: target, Format: "text"}).
		SetResult(&result).
		Post("/language/translate/v2")
	if err != nil {
		return "", transportError(translationService, err)
	}
	if err = mapHTTPError(translationService, resp); err != nil {
		return "", err
	}

	if len(result.Data.Translations) == 0 {
		return "", &UpstreamError{Service: translationService, Status: resp.StatusCode(), Err: ErrEmptyTranslation}
	}

	// entities may still be escaped even with format=text
	return html.UnescapeString(result.Data.Translations[0].TranslatedText), nil
}
