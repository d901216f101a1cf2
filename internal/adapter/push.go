package adapter

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
)

const pushService = "push"

type pushAdapter struct {
	client    *utils.HTTPClient
	serverKey string
	logger    *logger.Logger
}

// NewPushAdapter constructs a [PushSender] posting to <base>/fcm/send.
func NewPushAdapter(endpoint config.Endpoint, cfg config.Adapter, logger *logger.Logger) PushSender {
	return &pushAdapter{
		client:    utils.NewHTTPClient(strings.TrimRight(endpoint.BaseURL, "/"), cfg.RequestTimeout),
		serverKey: endpoint.APIKey,
		logger:    logger,
	}
}

type pushResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		MessageID string `json:"message_id"`
		Error     string `json:"error"`
	} `json:"results"`
}

// Send implements [PushSender].
func (a *pushAdapter) Send(ctx context.Context, msg models.PushMessage) error {
	var result pushResponse

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "key="+a.serverKey).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		SetResult(&result).
		Post("/fcm/send")
	if err != nil {
		return transportError(pushService, err)
	}
	if err = mapHTTPError(pushService, resp); err != nil {
		return err
	}

	if result.Failure > 0 {
		for _, r := range result.Results {
			switch r.Error {
			case "":
			case "InvalidRegistration", "NotRegistered", "MismatchSenderId":
				return &UpstreamError{Service: pushService, Status: resp.StatusCode(), Err: ErrInvalidPushToken}
			default:
				return &UpstreamError{Service: pushService, Status: resp.StatusCode(), Err: errors.New(r.Error)}
			}
		}
	}

	return nil
}
