package handler

import (
	"context"
	"time"

	"prioritix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PingFunc checks one dependency.
type PingFunc func(ctx context.Context) error

type HealthResponse struct {
	Status   string            `json:"status"`
	Database string            `json:"database"`
	Cache    string            `json:"cache"`
	System   utils.SystemStats `json:"system"`
	Uptime   string            `json:"uptime"`
}

type HealthHandler struct {
	database PingFunc
	cache    PingFunc // nil when token revocation is disabled
	started  time.Time
	timeout  time.Duration
}

func NewHealthHandler(database, cache PingFunc) *HealthHandler {
	return &HealthHandler{
		database: database,
		cache:    cache,
		started:  time.Now(),
		timeout:  2 * time.Second,
	}
}

// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "ok",
		Database: "up",
		Cache:    "disabled",
		System:   utils.GetSystemStats(),
		Uptime:   time.Since(h.started).Round(time.Second).String(),
	}

	dbErr := h.database(ctx)
	if dbErr != nil {
		zap.L().Warn("health check: database unreachable", zap.Error(dbErr))
		resp.Database = "down"
		resp.Status = "unavailable"
	}

	if h.cache != nil {
		resp.Cache = "up"
		if err := h.cache(ctx); err != nil {
			zap.L().Warn("health check: redis unreachable", zap.Error(err))
			resp.Cache = "down"
			if dbErr == nil {
				resp.Status = "degraded"
			}
		}
	}

	if dbErr != nil {
		utils.ServiceUnavailable(c, resp)
		return
	}
	utils.Success(c, resp)
}
