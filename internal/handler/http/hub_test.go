package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startStreamServer serves the full router and returns the stream URL.
func startStreamServer(t *testing.T, h *Handler) string {
	t.Helper()
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)
	t.Cleanup(h.Hub().Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/user/stream"
}

func dialStream(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readProfile(t *testing.T, conn *websocket.Conn) models.UserProfile {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var p models.UserProfile
	require.NoError(t, conn.ReadJSON(&p))
	return p
}

func waitForStreams(t *testing.T, hub *ProfileHub, uid string, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Streams(uid) == n }, 5*time.Second, 10*time.Millisecond)
}

func streamHandler(t *testing.T) *Handler {
	profiles := &fakeProfileService{
		getFn: func(_ context.Context, uid string) (models.UserProfile, error) {
			return models.UserProfile{UID: uid, DisplayName: "Alice"}, nil
		},
	}
	return newTestHandler(t, &service.Services{ProfileService: profiles}, nil)
}

// ── stream ────────────────────────────────────────────────────────────────────

// TestProfileStream_SendsCurrentThenUpdates verifies that the first frame is
// the stored profile and later frames follow profile.updated events.
func TestProfileStream_SendsCurrentThenUpdates(t *testing.T) {
	h := streamHandler(t)
	url := startStreamServer(t, h)

	conn := dialStream(t, url+"?token="+testToken)

	first := readProfile(t, conn)
	assert.Equal(t, testUID, first.UID)
	assert.Equal(t, "Alice", first.DisplayName)

	waitForStreams(t, h.Hub(), testUID, 1)

	err := h.Hub().OnProfileUpdated(context.Background(), events.Event{
		Topic:   events.ProfileUpdated,
		Payload: models.UserProfile{UID: testUID, DisplayName: "Alice B."},
	})
	require.NoError(t, err)

	next := readProfile(t, conn)
	assert.Equal(t, "Alice B.", next.DisplayName)
}

// TestProfileStream_OnlyOwnerReceives verifies that updates never reach the
// streams of other users.
func TestProfileStream_OnlyOwnerReceives(t *testing.T) {
	h := streamHandler(t)
	startStreamServer(t, h)

	delivered := h.Hub().Broadcast(models.UserProfile{UID: "bob"})
	assert.Zero(t, delivered)
}

// TestProfileStream_MultipleDevices verifies fan-out to every stream of a
// user.
func TestProfileStream_MultipleDevices(t *testing.T) {
	h := streamHandler(t)
	url := startStreamServer(t, h)

	phone := dialStream(t, url+"?token="+testToken)
	laptop := dialStream(t, url+"?token="+testToken)
	readProfile(t, phone)
	readProfile(t, laptop)
	waitForStreams(t, h.Hub(), testUID, 2)

	assert.Equal(t, 2, h.Hub().Broadcast(models.UserProfile{UID: testUID, DisplayName: "x"}))
	assert.Equal(t, "x", readProfile(t, phone).DisplayName)
	assert.Equal(t, "x", readProfile(t, laptop).DisplayName)
}

// TestProfileStream_UnregistersOnClose verifies that a closed connection
// leaves the hub.
func TestProfileStream_UnregistersOnClose(t *testing.T) {
	h := streamHandler(t)
	url := startStreamServer(t, h)

	conn := dialStream(t, url+"?token="+testToken)
	readProfile(t, conn)
	waitForStreams(t, h.Hub(), testUID, 1)

	require.NoError(t, conn.Close())

	waitForStreams(t, h.Hub(), testUID, 0)
}

// TestProfileStream_RejectsBadToken verifies the 401 answer before the
// upgrade.
func TestProfileStream_RejectsBadToken(t *testing.T) {
	h := streamHandler(t)
	url := startStreamServer(t, h)

	_, resp, err := websocket.DefaultDialer.Dial(url+"?token=nope", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestProfileHub_CloseDisconnects verifies that Close ends every stream and
// rejects new ones.
func TestProfileHub_CloseDisconnects(t *testing.T) {
	h := streamHandler(t)
	url := startStreamServer(t, h)

	conn := dialStream(t, url+"?token="+testToken)
	readProfile(t, conn)
	waitForStreams(t, h.Hub(), testUID, 1)

	h.Hub().Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Zero(t, h.Hub().Streams(testUID))
}

// TestProfileHub_OnProfileUpdated_WrongPayload verifies the payload check.
func TestProfileHub_OnProfileUpdated_WrongPayload(t *testing.T) {
	hub := NewProfileHub(streamHandler(t).logger)

	err := hub.OnProfileUpdated(context.Background(), events.Event{Payload: "nope"})
	assert.Error(t, err)
}
