// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/gorilla/websocket"
)

const (
	// writeWait is the time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// pongWait is the time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds frames read from the peer. Clients only send
	// control frames.
	maxMessageSize = 512

	// sendBuffer is the number of profile frames queued per client. A client
	// that falls this far behind is disconnected and reconnects.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Streams are authenticated by token, not by cookie.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ProfileHub fans profile updates out to the websocket streams of their
// owners. A user may hold several streams, one per device.
type ProfileHub struct {
	mu      sync.Mutex
	clients map[string]map[*streamClient]struct{}
	closed  bool

	logger *logger.Logger
}

func NewProfileHub(logger *logger.Logger) *ProfileHub {
	return &ProfileHub{
		clients: make(map[string]map[*streamClient]struct{}),
		logger:  logger,
	}
}

// streamClient is a middleman between one websocket connection and the hub.
type streamClient struct {
	hub  *ProfileHub
	uid  string
	conn *websocket.Conn

	send chan []byte
	done chan struct{}
	once sync.Once
}

// Serve registers conn for uid, sends initial as the first frame and blocks
// until the connection goes away.
func (h *ProfileHub) Serve(conn *websocket.Conn, uid string, initial models.UserProfile) error {
	c := &streamClient{
		hub:  h,
		uid:  uid,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	frame, err := json.Marshal(initial)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("error encoding profile frame: %w", err)
	}
	c.send <- frame

	if !h.register(c) {
		_ = conn.Close()
		return events.ErrClosed
	}

	go c.writePump()
	c.readPump()
	return nil
}

// Broadcast queues profile on every stream of its owner and returns how many
// streams received it.
func (h *ProfileHub) Broadcast(profile models.UserProfile) int {
	frame, err := json.Marshal(profile)
	if err != nil {
		h.logger.Err(err).Str("uid", profile.UID).Msg("error encoding profile frame")
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for c := range h.clients[profile.UID] {
		select {
		case c.send <- frame:
			delivered++
		default:
			h.logger.Warn().Str("uid", profile.UID).Msg("profile stream is lagging, dropping client")
			h.removeLocked(c)
		}
	}
	return delivered
}

// OnProfileUpdated is the profile.updated subscriber.
func (h *ProfileHub) OnProfileUpdated(_ context.Context, e events.Event) error {
	profile, ok := e.Payload.(models.UserProfile)
	if !ok {
		return fmt.Errorf("unexpected profile payload %T", e.Payload)
	}
	h.Broadcast(profile)
	return nil
}

// Streams returns the number of open streams of uid.
func (h *ProfileHub) Streams(uid string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[uid])
}

// Close disconnects every stream. Later Serve calls fail.
func (h *ProfileHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, set := range h.clients {
		for c := range set {
			h.removeLocked(c)
		}
	}
}

func (h *ProfileHub) register(c *streamClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	set, ok := h.clients[c.uid]
	if !ok {
		set = make(map[*streamClient]struct{})
		h.clients[c.uid] = set
	}
	set[c] = struct{}{}
	return true
}

func (h *ProfileHub) unregister(c *streamClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *ProfileHub) removeLocked(c *streamClient) {
	if set, ok := h.clients[c.uid]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.uid)
		}
	}
	c.stop()
}

func (c *streamClient) stop() {
	c.once.Do(func() { close(c.done) })
}

// readPump only handles control frames. It returns when the peer closes
// the connection or stops answering pings.
func (c *streamClient) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug().Err(err).Str("uid", c.uid).Msg("profile stream closed")
			}
			return
		}
	}
}

// writePump is the only writer of the connection.
func (c *streamClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}
