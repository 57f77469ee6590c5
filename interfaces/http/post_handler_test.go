package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"social-hub/domain/dto"
	"social-hub/domain/model"
	httpHandler "social-hub/interfaces/http"
	"social-hub/interfaces/middleware"
	"social-hub/usecase"
)

type stubSyncUsecase struct {
	stats dto.SyncStats
	err   error
}

func (s *stubSyncUsecase) SyncPlatform(ctx context.Context, userID int64, platform string) (dto.SyncStats, error) {
	return s.stats, s.err
}

type stubPostUsecase struct {
	posts      []model.Post
	post       *model.Post
	err        error
	lastFilter model.PostFilter
}

func (s *stubPostUsecase) List(ctx context.Context, userID int64, filter model.PostFilter) ([]model.Post, error) {
	s.lastFilter = filter
	return s.posts, s.err
}

func (s *stubPostUsecase) GetByID(ctx context.Context, userID, id int64) (*model.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func postRouter(postUC usecase.IPostUsecase, syncUC usecase.ISyncUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, int64(7)) })
	handler := httpHandler.NewPostHandler(postUC, syncUC)
	router.POST("/api/posts/sync", handler.Sync)
	router.GET("/api/posts", handler.List)
	router.GET("/api/posts/:id", handler.GetByID)
	return router
}

func TestSyncHandler_ReturnsStats(t *testing.T) {
	router := postRouter(&stubPostUsecase{}, &stubSyncUsecase{
		stats: dto.SyncStats{PostsSynced: 2, RepliesSynced: 3, StandaloneRepliesSynced: 1},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/sync", strings.NewReader(`{"platform":"threads"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Message string        `json:"message"`
		Stats   dto.SyncStats `json:"stats"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Sync completed", body.Message)
	assert.Equal(t, 2, body.Stats.PostsSynced)
	assert.Equal(t, 3, body.Stats.RepliesSynced)
	assert.Equal(t, 1, body.Stats.StandaloneRepliesSynced)
}

func TestSyncHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"unsupported platform", model.ErrUnsupportedPlatform, http.StatusBadRequest},
		{"not connected", model.ErrNotConnected, http.StatusNotFound},
		{"decryption failure", &model.DecryptionError{}, http.StatusInternalServerError},
		{"upstream failure", &model.UpstreamError{StatusCode: 500, Body: "boom"}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := postRouter(&stubPostUsecase{}, &stubSyncUsecase{err: tc.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/posts/sync", strings.NewReader(`{"platform":"threads"}`))
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			// Upstream bodies and decryption causes never reach the client.
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}

func TestSyncHandler_MissingPlatform(t *testing.T) {
	router := postRouter(&stubPostUsecase{}, &stubSyncUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/posts/sync", strings.NewReader(`{}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetByIDHandler_NotFound(t *testing.T) {
	router := postRouter(&stubPostUsecase{err: model.ErrPostNotFound}, &stubSyncUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListHandler_PassesFilters(t *testing.T) {
	stub := &stubPostUsecase{posts: []model.Post{{PlatformPostID: "tp-1"}}}
	router := postRouter(stub, &stubSyncUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/posts?platform=threads&type=REPLY&parent=123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tp-1")
	assert.Equal(t, "threads", stub.lastFilter.Platform)
	assert.Equal(t, "REPLY", stub.lastFilter.PostType)
	assert.Equal(t, "123", stub.lastFilter.ParentPostID)
}
