package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/osvaldoteixeira/spotify-clone/internal/domain/errors"
)

const (
	testSecret = "test-secret"
	testUserID = "550e8400-e29b-41d4-a716-446655440000"
)

func createJWT(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return tokenString
}

func createValidJWT(t *testing.T) string {
	return createJWT(t, testSecret, jwt.MapClaims{
		"sub":   testUserID,
		"email": "ana@example.com",
		"role":  "authenticated",
		"aud":   "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})
}

type capture struct {
	called bool
	user   *AuthUser
	token  string
}

func setupEcho(config JWTConfig) (*echo.Echo, *capture) {
	e := echo.New()
	captured := &capture{}
	e.GET("/protected", func(c echo.Context) error {
		captured.called = true
		captured.user, _ = UserFromContext(c.Request().Context())
		captured.token = AccessTokenFromContext(c.Request().Context())
		return c.String(http.StatusOK, "ok")
	}, JWTMiddleware(config))
	return e, captured
}

func doRequest(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTMiddleware_SuccessfulAuthentication(t *testing.T) {
	e, captured := setupEcho(JWTConfig{Secret: testSecret, Logger: zap.NewNop(), Audience: "authenticated"})
	token := createValidJWT(t)

	rec := doRequest(e, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, captured.called)
	require.NotNil(t, captured.user)
	assert.Equal(t, testUserID, captured.user.UserID)
	assert.Equal(t, "ana@example.com", captured.user.Email)
	assert.Equal(t, "authenticated", captured.user.Role)
	assert.Equal(t, token, captured.token)
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		authHeader func(t *testing.T) string
		wantCode   string
	}{
		{
			name:       "missing header",
			authHeader: func(t *testing.T) string { return "" },
			wantCode:   "MISSING_AUTH_HEADER",
		},
		{
			name:       "not a bearer token",
			authHeader: func(t *testing.T) string { return "Basic abc" },
			wantCode:   "INVALID_AUTH_FORMAT",
		},
		{
			name: "wrong secret",
			authHeader: func(t *testing.T) string {
				return "Bearer " + createJWT(t, "other-secret", jwt.MapClaims{"sub": testUserID, "exp": time.Now().Add(time.Hour).Unix()})
			},
			wantCode: "INVALID_TOKEN",
		},
		{
			name: "expired",
			authHeader: func(t *testing.T) string {
				return "Bearer " + createJWT(t, testSecret, jwt.MapClaims{"sub": testUserID, "exp": time.Now().Add(-time.Hour).Unix()})
			},
			wantCode: "INVALID_TOKEN",
		},
		{
			name: "subject is not a uuid",
			authHeader: func(t *testing.T) string {
				return "Bearer " + createJWT(t, testSecret, jwt.MapClaims{"sub": "service-account", "exp": time.Now().Add(time.Hour).Unix()})
			},
			wantCode: "INVALID_CLAIMS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, captured := setupEcho(JWTConfig{Secret: testSecret, Logger: zap.NewNop()})

			rec := doRequest(e, tt.authHeader(t))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, captured.called)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestJWTMiddleware_AudienceMismatch(t *testing.T) {
	e, captured := setupEcho(JWTConfig{Secret: testSecret, Logger: zap.NewNop(), Audience: "authenticated"})
	token := createJWT(t, testSecret, jwt.MapClaims{"sub": testUserID, "aud": "anon", "exp": time.Now().Add(time.Hour).Unix()})

	rec := doRequest(e, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, captured.called)
}

func TestJWTMiddleware_OptionalMode(t *testing.T) {
	t.Run("no header passes without user", func(t *testing.T) {
		e, captured := setupEcho(JWTConfig{Secret: testSecret, Logger: zap.NewNop(), Optional: true})

		rec := doRequest(e, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, captured.called)
		assert.Nil(t, captured.user)
		assert.Empty(t, captured.token)
	})

	t.Run("invalid token passes without user but keeps token", func(t *testing.T) {
		e, captured := setupEcho(JWTConfig{Secret: testSecret, Logger: zap.NewNop(), Optional: true})

		rec := doRequest(e, "Bearer not-a-jwt")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, captured.called)
		assert.Nil(t, captured.user)
		assert.Equal(t, "not-a-jwt", captured.token)
	})

	t.Run("valid token sets user", func(t *testing.T) {
		e, captured := setupEcho(JWTConfig{Secret: testSecret, Logger: zap.NewNop(), Optional: true})

		rec := doRequest(e, "Bearer "+createValidJWT(t))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured.user)
		assert.Equal(t, testUserID, captured.user.UserID)
	})
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
		JWTMiddleware(JWTConfig{Secret: testSecret, Logger: zap.NewNop(), SkipPaths: []string{"/health"}}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClaimsResolver(t *testing.T) {
	resolver := NewClaimsResolver()

	_, err := resolver.Resolve(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrNoIdentity)

	ctx := WithUser(context.Background(), &AuthUser{UserID: testUserID, Email: "ana@example.com"})
	identity, err := resolver.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, testUserID, identity.ID)
	assert.Equal(t, "ana@example.com", identity.Email)
}
