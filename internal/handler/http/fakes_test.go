package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-chat-core/internal/events"
	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

// fakeAuthService implements service.AuthService. Each method field can be
// overridden per test case.
type fakeAuthService struct {
	signUpFn     func(ctx context.Context, c models.Credentials) (models.AuthResult, error)
	signInFn     func(ctx context.Context, c models.Credentials) (models.AuthResult, error)
	providerFn   func(ctx context.Context, c models.ProviderCredential) (models.AuthResult, error)
	signOutFn    func(ctx context.Context, token models.Token) error
	parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (f *fakeAuthService) SignUp(ctx context.Context, c models.Credentials) (models.AuthResult, error) {
	return f.signUpFn(ctx, c)
}

func (f *fakeAuthService) SignIn(ctx context.Context, c models.Credentials) (models.AuthResult, error) {
	return f.signInFn(ctx, c)
}

func (f *fakeAuthService) SignInWithProvider(ctx context.Context, c models.ProviderCredential) (models.AuthResult, error) {
	return f.providerFn(ctx, c)
}

func (f *fakeAuthService) SignOut(ctx context.Context, token models.Token) error {
	return f.signOutFn(ctx, token)
}

func (f *fakeAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if f.parseTokenFn == nil {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return f.parseTokenFn(ctx, tokenString)
}

// fakeProfileService implements service.ProfileService.
type fakeProfileService struct {
	getFn          func(ctx context.Context, uid string) (models.UserProfile, error)
	settingsFn     func(ctx context.Context, uid string, patch models.SettingsPatch) (models.UserSettings, error)
	profileFn      func(ctx context.Context, uid string, patch models.ProfilePatch) (models.UserProfile, error)
	setPushTokenFn func(ctx context.Context, uid, token string) error
}

func (f *fakeProfileService) GetProfile(ctx context.Context, uid string) (models.UserProfile, error) {
	return f.getFn(ctx, uid)
}

func (f *fakeProfileService) UpdateSettings(ctx context.Context, uid string, patch models.SettingsPatch) (models.UserSettings, error) {
	return f.settingsFn(ctx, uid, patch)
}

func (f *fakeProfileService) UpdateProfile(ctx context.Context, uid string, patch models.ProfilePatch) (models.UserProfile, error) {
	return f.profileFn(ctx, uid, patch)
}

func (f *fakeProfileService) SetPushToken(ctx context.Context, uid, token string) error {
	return f.setPushTokenFn(ctx, uid, token)
}

// fakeChatService implements service.ChatService.
type fakeChatService struct {
	messageFn func(ctx context.Context, senderID string, req models.CreateMessageRequest) (models.Message, error)
	callFn    func(ctx context.Context, callerID string, req models.CreateCallRequest) (models.Call, error)
	storyFn   func(ctx context.Context, uid string, req models.CreateStoryRequest) (models.Story, error)
}

func (f *fakeChatService) CreateMessage(ctx context.Context, senderID string, req models.CreateMessageRequest) (models.Message, error) {
	return f.messageFn(ctx, senderID, req)
}

func (f *fakeChatService) CreateCall(ctx context.Context, callerID string, req models.CreateCallRequest) (models.Call, error) {
	return f.callFn(ctx, callerID, req)
}

func (f *fakeChatService) CreateStory(ctx context.Context, uid string, req models.CreateStoryRequest) (models.Story, error) {
	return f.storyFn(ctx, uid, req)
}

// fakeAccountService implements service.AccountService.
type fakeAccountService struct {
	createdFn func(ctx context.Context, identity models.Identity) (models.UserProfile, error)
	deletedFn func(ctx context.Context, uid string) error
}

func (f *fakeAccountService) OnIdentityCreated(ctx context.Context, identity models.Identity) (models.UserProfile, error) {
	return f.createdFn(ctx, identity)
}

func (f *fakeAccountService) OnIdentityDeleted(ctx context.Context, uid string) error {
	return f.deletedFn(ctx, uid)
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(_ context.Context) string {
	return f.version
}

// publishedEvent is one call recorded by fakePublisher.
type publishedEvent struct {
	topic   events.Topic
	id      string
	payload any
}

type fakePublisher struct {
	published []publishedEvent
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, topic events.Topic, id string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedEvent{topic: topic, id: id, payload: payload})
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

const (
	testUID        = "alice"
	testToken      = "valid-token"
	testWebhookKey = "webhook-secret"
)

// validAuth accepts testToken for testUID.
func validAuth() *fakeAuthService {
	return &fakeAuthService{
		parseTokenFn: func(_ context.Context, s string) (models.Token, error) {
			if s != testToken {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{
				UID:              testUID,
				RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1", Subject: testUID},
			}, nil
		},
	}
}

// newTestHandler builds a Handler around svcs with a nop logger and the
// test webhook key.
func newTestHandler(t *testing.T, svcs *service.Services, publisher service.EventPublisher) *Handler {
	t.Helper()
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &fakeAppInfoService{version: "test-version"}
	}
	if svcs.AuthService == nil {
		svcs.AuthService = validAuth()
	}
	if publisher == nil {
		publisher = &fakePublisher{}
	}
	return NewHandler(svcs, publisher, testWebhookKey, logger.Nop())
}

// serve sends a request through the full router. body is JSON encoded
// unless it is already a string.
func serve(t *testing.T, h *Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var raw []byte
	switch b := body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}

// signed returns the webhook signature header of body.
func signed(t *testing.T, body any) (string, map[string]string) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	sig := utils.NewHasher(testWebhookKey).Sign(raw)
	return string(raw), map[string]string{utils.HashHeader: sig}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// withUID returns r carrying uid the way the auth middleware stores it.
func withUID(r *http.Request, uid string) *http.Request {
	return r.WithContext(utils.WithUID(r.Context(), uid, "jti-1"))
}
