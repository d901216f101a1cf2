package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/config"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/gorilla/websocket"
)

const profileStreamPath = "/api/user/stream"

type websocketWatcher struct {
	streamURL string
	dialer    *websocket.Dialer
	logger    *logger.Logger
}

// NewProfileWatcher constructs a [ProfileWatcher] for the server at
// adapterCfg.HTTPAddress. http and https are mapped to ws and wss.
func NewProfileWatcher(adapterCfg config.ClientAdapter, logger *logger.Logger) (ProfileWatcher, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	u, err := url.Parse(baseURL + profileStreamPath)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	return &websocketWatcher{
		streamURL: u.String(),
		dialer:    &websocket.Dialer{HandshakeTimeout: adapterCfg.RequestTimeout},
		logger:    logger,
	}, nil
}

// Watch implements [ProfileWatcher].
func (w *websocketWatcher) Watch(ctx context.Context, token string, onUpdate func(models.UserProfile)) error {
	u, _ := url.Parse(w.streamURL)
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, resp, err := w.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return &UpstreamError{Service: serverService, Status: resp.StatusCode, Err: ErrUnauthorized}
		}
		return transportError(serverService, err)
	}
	defer conn.Close()

	// unblock ReadMessage when the caller goes away
	stop := context.AfterFunc(ctx, func() {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		conn.Close()
	})
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return transportError(serverService, err)
		}

		var profile models.UserProfile
		if err = json.Unmarshal(data, &profile); err != nil {
			w.logger.Warn().Err(err).Str("func", "*websocketWatcher.Watch").Msg("skipping malformed profile frame")
			continue
		}
		if strings.TrimSpace(profile.UID) == "" {
			continue
		}

		onUpdate(profile)
	}
}
