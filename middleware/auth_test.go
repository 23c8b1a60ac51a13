package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"prioritix/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) IsRevoked(_ context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[token], nil
}

func setupAuthRouter(revocations services.TokenRevocations) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(AuthOptions{SecretKey: testSecret, Issuer: "prioritix", Revocations: revocations}))
	router.GET("/protected", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := services.GenerateAccessToken(testSecret, "prioritix", "user-42", time.Hour)
	require.NoError(t, err)
	expired, err := services.GenerateAccessToken(testSecret, "prioritix", "user-42", -time.Minute)
	require.NoError(t, err)
	foreign, err := services.GenerateAccessToken("other-secret", "prioritix", "user-42", time.Hour)
	require.NoError(t, err)
	revokedToken, err := services.GenerateAccessToken(testSecret, "prioritix", "user-7", 2*time.Hour)
	require.NoError(t, err)

	revocations := &fakeRevocations{revoked: map[string]bool{revokedToken: true}}

	tests := []struct {
		name        string
		header      string
		revocations services.TokenRevocations
		wantCode    int
		wantBody    string
	}{
		{name: "valid token", header: "Bearer " + valid, revocations: revocations, wantCode: http.StatusOK, wantBody: "user-42"},
		{name: "no header", header: "", revocations: revocations, wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, revocations: revocations, wantCode: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, revocations: revocations, wantCode: http.StatusUnauthorized},
		{name: "bad signature", header: "Bearer " + foreign, revocations: revocations, wantCode: http.StatusUnauthorized},
		{name: "revoked", header: "Bearer " + revokedToken, revocations: revocations, wantCode: http.StatusUnauthorized},
		{name: "no blacklist configured", header: "Bearer " + revokedToken, revocations: nil, wantCode: http.StatusOK, wantBody: "user-7"},
		{
			name:        "blacklist unreachable fails open",
			header:      "Bearer " + valid,
			revocations: &fakeRevocations{err: errors.New("dial tcp: connection refused")},
			wantCode:    http.StatusOK,
			wantBody:    "user-42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter(tt.revocations)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
