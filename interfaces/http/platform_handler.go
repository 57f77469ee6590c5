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

type IPlatformHandler interface {
	Connect(c *gin.Context)
	Disconnect(c *gin.Context)
	ListAccounts(c *gin.Context)
}

type PlatformHandler struct {
	platformUsecase usecase.IPlatformUsecase
}

func NewPlatformHandler(platformUsecase usecase.IPlatformUsecase) IPlatformHandler {
	return &PlatformHandler{platformUsecase: platformUsecase}
}

func (h *PlatformHandler) Connect(c *gin.Context) {
	var req dto.ReqConnectPlatform
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"message": "platform and token are required"})
		return
	}

	userID := c.GetInt64(middleware.UserIDKey)
	account, err := h.platformUsecase.Connect(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, model.ErrUnsupportedPlatform) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Unsupported platform"})
			return
		}
		var upstreamErr *model.UpstreamError
		if errors.As(err, &upstreamErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token verification failed"})
			return
		}
		logger.GetLogger().WithField("error", err).Error("Error while connecting platform")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to connect platform"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Platform connected", "data": account})
}

func (h *PlatformHandler) Disconnect(c *gin.Context) {
	platform := c.Param("platform")
	userID := c.GetInt64(middleware.UserIDKey)
	if err := h.platformUsecase.Disconnect(c.Request.Context(), userID, platform); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while disconnecting platform")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to disconnect platform"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Platform disconnected"})
}

func (h *PlatformHandler) ListAccounts(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)
	accounts, err := h.platformUsecase.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while listing accounts")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": accounts})
}
