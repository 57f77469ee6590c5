package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"social-hub/domain/dto"
	"social-hub/domain/model"
	"social-hub/infrastructure/logger"
	"social-hub/interfaces/middleware"
	"social-hub/usecase"
)

const ErrorUnmarshal = "Error while unmarshal"

type IPostHandler interface {
	Sync(c *gin.Context)
	List(c *gin.Context)
	GetByID(c *gin.Context)
}

type PostHandler struct {
	postUsecase usecase.IPostUsecase
	syncUsecase usecase.ISyncUsecase
}

func NewPostHandler(postUsecase usecase.IPostUsecase, syncUsecase usecase.ISyncUsecase) IPostHandler {
	return &PostHandler{postUsecase: postUsecase, syncUsecase: syncUsecase}
}

func (h *PostHandler) Sync(c *gin.Context) {
	var req dto.ReqSyncPlatform
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, gin.H{"message": "platform is required"})
		return
	}

	userID := c.GetInt64(middleware.UserIDKey)
	stats, err := h.syncUsecase.SyncPlatform(c.Request.Context(), userID, req.Platform)
	if err != nil {
		status, body := mapSyncError(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sync completed",
		"stats":   stats,
	})
}

func (h *PostHandler) List(c *gin.Context) {
	userID := c.GetInt64(middleware.UserIDKey)
	filter := model.PostFilter{
		Platform:     c.Query("platform"),
		PostType:     c.Query("type"),
		ParentPostID: c.Query("parent"),
	}

	posts, err := h.postUsecase.List(c.Request.Context(), userID, filter)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while listing posts")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (h *PostHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid post id"})
		return
	}

	userID := c.GetInt64(middleware.UserIDKey)
	post, err := h.postUsecase.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		logger.GetLogger().WithField("error", err).Error("Error while fetching post")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": post})
}

// mapSyncError translates pipeline failures into response codes. Decryption
// causes and upstream bodies are logged server-side only.
func mapSyncError(err error) (int, gin.H) {
	switch {
	case errors.Is(err, model.ErrUnsupportedPlatform):
		return http.StatusBadRequest, gin.H{"message": "Unsupported platform"}
	case errors.Is(err, model.ErrNotConnected):
		return http.StatusNotFound, gin.H{"message": "Platform not connected"}
	}

	var decryptionErr *model.DecryptionError
	if errors.As(err, &decryptionErr) {
		logger.GetLogger().WithField("error", decryptionErr.Unwrap()).Error("Credential decryption failed")
		return http.StatusInternalServerError, gin.H{"message": "Sync failed", "details": decryptionErr.Error()}
	}

	var upstreamErr *model.UpstreamError
	if errors.As(err, &upstreamErr) {
		logger.GetLogger().WithField("error", err).Error("Upstream fetch failed")
		return http.StatusInternalServerError, gin.H{"message": "Sync failed", "details": "upstream fetch failed"}
	}

	logger.GetLogger().WithField("error", err).Error("Sync failed")
	return http.StatusInternalServerError, gin.H{"message": "Sync failed"}
}
