package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(testSecret, "prioritix", "user-1", time.Hour)
	require.NoError(t, err)

	claims, err := ParseAccessToken(token, testSecret, "prioritix")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerateAccessTokenRequiresUser(t *testing.T) {
	_, err := GenerateAccessToken(testSecret, "prioritix", "", time.Hour)
	assert.Error(t, err)
}

func TestParseAccessTokenRejects(t *testing.T) {
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := GenerateAccessToken("another-secret", "prioritix", "user-1", time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				tok, err := GenerateAccessToken(testSecret, "prioritix", "user-1", -time.Minute)
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), Claims{UserID: "user-1"})
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "refresh token",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), Claims{
					UserID:           "user-1",
					Type:             TokenTypeRefresh,
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future, Issuer: "prioritix"},
				})
			},
			wantErr: ErrInvalidTokenType,
		},
		{
			name: "foreign issuer",
			token: func(t *testing.T) string {
				tok, err := GenerateAccessToken(testSecret, "someone-else", "user-1", time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrInvalidTokenIssuer,
		},
		{
			name: "missing user id",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), Claims{
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future, Issuer: "prioritix"},
				})
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "unexpected signing method",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS512, []byte(testSecret), Claims{
					UserID:           "user-1",
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future, Issuer: "prioritix"},
				})
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   func(t *testing.T) string { return "not-a-jwt" },
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAccessToken(tt.token(t), testSecret, "prioritix")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestParseAccessTokenWithoutIssuerCheck(t *testing.T) {
	token, err := GenerateAccessToken(testSecret, "anyone", "user-1", time.Hour)
	require.NoError(t, err)

	claims, err := ParseAccessToken(token, testSecret, "")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}
