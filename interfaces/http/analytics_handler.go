package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"social-hub/domain/dto"
	"social-hub/domain/model"
	"social-hub/infrastructure/logger"
	"social-hub/interfaces/middleware"
	"social-hub/usecase"
)

type IAnalyticsHandler interface {
	Overview(c *gin.Context)
	Sync(c *gin.Context)
}

type AnalyticsHandler struct {
	analyticsUsecase usecase.IAnalyticsUsecase
}

func NewAnalyticsHandler(analyticsUsecase usecase.IAnalyticsUsecase) IAnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	platform := c.Query("platform")
	if platform == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "platform is required"})
		return
	}

	userID := c.GetInt64(middleware.UserIDKey)
	overview, err := h.analyticsUsecase.Overview(c.Request.Context(), userID, platform)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while building analytics overview")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build analytics overview"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": overview})
}

func (h *AnalyticsHandler) Sync(c *gin.Context) {
	var req dto.ReqSyncPlatform
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"message": "platform is required"})
		return
	}

	userID := c.GetInt64(middleware.UserIDKey)
	snapshot, err := h.analyticsUsecase.SyncSnapshot(c.Request.Context(), userID, req.Platform)
	if err != nil {
		if errors.Is(err, model.ErrNotConnected) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Platform not connected"})
			return
		}
		logger.GetLogger().WithField("error", err).Error("Error while recording follower snapshot")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record follower snapshot"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Analytics synced", "data": snapshot})
}
