package http_test

import (
	"context"
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
)

type stubPlatformUsecase struct {
	account *model.ConnectedAccount
	err     error
}

func (s *stubPlatformUsecase) Connect(ctx context.Context, userID int64, req dto.ReqConnectPlatform) (*model.ConnectedAccount, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.account, nil
}

func (s *stubPlatformUsecase) Disconnect(ctx context.Context, userID int64, platform string) error {
	return s.err
}

func (s *stubPlatformUsecase) ListAccounts(ctx context.Context, userID int64) ([]model.ConnectedAccount, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.account == nil {
		return nil, nil
	}
	return []model.ConnectedAccount{*s.account}, nil
}

func platformRouter(uc *stubPlatformUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set(middleware.UserIDKey, int64(7)) })
	handler := httpHandler.NewPlatformHandler(uc)
	router.POST("/api/platforms/connect", handler.Connect)
	router.DELETE("/api/platforms/disconnect/:platform", handler.Disconnect)
	router.GET("/api/platforms/accounts", handler.ListAccounts)
	return router
}

func TestConnectHandler_InvalidTokenIs401(t *testing.T) {
	router := platformRouter(&stubPlatformUsecase{err: &model.UpstreamError{StatusCode: 401, Body: "bad token"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/platforms/connect",
		strings.NewReader(`{"platform":"threads","token":"bad"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "bad token")
}

func TestConnectHandler_UnsupportedPlatformIs400(t *testing.T) {
	router := platformRouter(&stubPlatformUsecase{err: model.ErrUnsupportedPlatform})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/platforms/connect",
		strings.NewReader(`{"platform":"myspace","token":"t"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnectHandler_MissingTokenIs400(t *testing.T) {
	router := platformRouter(&stubPlatformUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/platforms/connect",
		strings.NewReader(`{"platform":"threads"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnectHandler_NeverEchoesStoredToken(t *testing.T) {
	router := platformRouter(&stubPlatformUsecase{account: &model.ConnectedAccount{
		UserID:      7,
		Platform:    "threads",
		AccessToken: "iv:supersecret",
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/platforms/connect",
		strings.NewReader(`{"platform":"threads","token":"plain"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "supersecret")
}

func TestDisconnectHandler(t *testing.T) {
	router := platformRouter(&stubPlatformUsecase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/platforms/disconnect/threads", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
