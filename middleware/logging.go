package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mileusna/useragent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// clientInfo condenses a User-Agent header into browser, os and device.
func clientInfo(userAgent string) (browser, os, device string) {
	ua := useragent.Parse(userAgent)

	browser = ua.Name
	if browser == "" {
		browser = "unknown"
	}
	os = ua.OS
	if os == "" {
		os = "unknown"
	}
	switch {
	case ua.Bot:
		device = "bot"
	case ua.Tablet:
		device = "tablet"
	case ua.Mobile:
		device = "mobile"
	default:
		device = "desktop"
	}
	return browser, os, device
}

// LoggingMiddleware writes one structured access log line per request.
func LoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}

		browser, os, device := clientInfo(c.Request.UserAgent())
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("size", c.Writer.Size()),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("browser", browser),
			zap.String("os", os),
			zap.String("device", device),
		}
		if userID := c.GetString("user_id"); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()))
		}

		logger.Log(level, "request", fields...)
	}
}
