package handler

import (
	"prioritix/usecase"
	"prioritix/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *usecase.AnalyticsService
}

func NewAnalyticsHandler(service *usecase.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GET /api/analytics
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "analytics_summary", err)
		return
	}
	utils.Success(c, summary)
}

// GET /api/analytics/monthly
func (h *AnalyticsHandler) GetMonthly(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	monthly, err := h.service.Monthly(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "analytics_monthly", err)
		return
	}
	utils.Success(c, monthly)
}
