package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-chat-core/internal/logger"
	"github.com/MKhiriev/go-chat-core/internal/service"
	"github.com/MKhiriev/go-chat-core/internal/utils"
	"github.com/MKhiriev/go-chat-core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	return r.WithContext(nop.Logger.WithContext(r.Context()))
}

// ── getTokenFromAuthHeader ────────────────────────────────────────────────────

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid Bearer token", header: "Bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "case insensitive scheme", header: "bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "missing token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "extra parts", header: "Bearer token extra", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ── auth ──────────────────────────────────────────────────────────────────────

// TestAuth_Middleware_TableTest covers accepted and rejected credentials.
func TestAuth_Middleware_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantNext   bool
	}{
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "BearerTokenWithoutSpace", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer revoked", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + testToken, wantStatus: http.StatusOK, wantNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{AuthService: validAuth()}, nil)

			var nextCalled bool
			var gotUID, gotJTI string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUID, _ = utils.GetUIDFromContext(r.Context())
				gotJTI, _ = utils.GetTokenIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/test", nil))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantNext {
				assert.Equal(t, testUID, gotUID)
				assert.Equal(t, "jti-1", gotJTI)
			} else {
				assert.NotEmpty(t, decodeError(t, rec).Error)
			}
		})
	}
}

// TestAuth_IgnoresQueryToken verifies that only the stream route accepts a
// token in the URL.
func TestAuth_IgnoresQueryToken(t *testing.T) {
	h := newTestHandler(t, &service.Services{}, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})
	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/test?token="+testToken, nil))
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestAuthQuery_AcceptsQueryAndHeader verifies both token sources of the
// stream route.
func TestAuthQuery_AcceptsQueryAndHeader(t *testing.T) {
	h := newTestHandler(t, &service.Services{}, nil)

	for name, build := range map[string]func() *http.Request{
		"query": func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/stream?token="+testToken, nil)
		},
		"header": func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/stream", nil)
			r.Header.Set("Authorization", "Bearer "+testToken)
			return r
		},
	} {
		t.Run(name, func(t *testing.T) {
			var gotUID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUID, _ = utils.GetUIDFromContext(r.Context())
			})

			rec := httptest.NewRecorder()
			h.authQuery(next).ServeHTTP(rec, injectNopLogger(build()))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, testUID, gotUID)
		})
	}
}

// TestAuth_UnexpectedParseError verifies that a token error other than an
// invalid token maps through the error table.
func TestAuth_UnexpectedParseError(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &fakeAuthService{
		parseTokenFn: func(context.Context, string) (models.Token, error) {
			return models.Token{}, assert.AnError
		},
	}}, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})
	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/test", nil))
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// TestAuth_OriginalRequestNotMutated verifies that the middleware derives a
// new request instead of changing the caller's.
func TestAuth_OriginalRequestNotMutated(t *testing.T) {
	h := newTestHandler(t, &service.Services{}, nil)

	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/test", nil))
	req.Header.Set("Authorization", "Bearer "+testToken)
	originalCtx := req.Context()

	h.auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, originalCtx, req.Context())
}
