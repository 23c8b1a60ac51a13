package middleware

import (
	"errors"
	"strings"

	"prioritix/services"
	"prioritix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthOptions struct {
	SecretKey string
	Issuer    string // empty accepts any issuer
	// Revocations is optional; nil skips the blacklist check.
	Revocations services.TokenRevocations
}

// AuthMiddleware verifies the bearer token and attaches user_id to the
// context. Nothing behind it runs for an unauthenticated request.
func AuthMiddleware(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the token from the header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.TrackAuthAttempt("failure", "missing_token")
			utils.Unauthorized(c, "No token, authorization denied")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := services.ParseAccessToken(tokenString, opts.SecretKey, opts.Issuer)
		if err != nil {
			reason := "invalid_token"
			switch {
			case errors.Is(err, services.ErrInvalidTokenType):
				reason = "invalid_type"
			case errors.Is(err, services.ErrInvalidTokenIssuer):
				reason = "invalid_issuer"
			}
			utils.TrackAuthAttempt("failure", reason)
			utils.Unauthorized(c, "Token is not valid")
			return
		}

		if opts.Revocations != nil {
			revoked, err := opts.Revocations.IsRevoked(c.Request.Context(), tokenString)
			if err != nil {
				// fail open: an unreachable Redis must not lock every user out
				zap.L().Warn("token blacklist check failed",
					zap.String("request_id", c.GetString("request_id")),
					zap.Error(err),
				)
			} else if revoked {
				utils.TrackAuthAttempt("failure", "revoked")
				utils.Unauthorized(c, "Token has been invalidated")
				return
			}
		}

		utils.TrackAuthAttempt("success", "access")
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
