package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"social-hub/domain/dto"
	"social-hub/domain/model"
	"social-hub/domain/repository"
	"social-hub/usecase"
)

func newPlatformFixture(fetcher repository.IContentFetcher) (*MockCredentialRepo, *MockCodec, usecase.IPlatformUsecase) {
	credentialRepo := new(MockCredentialRepo)
	codec := new(MockCodec)
	uc := usecase.NewPlatformUsecase(credentialRepo, codec, map[string]repository.IContentFetcher{"threads": fetcher})
	return credentialRepo, codec, uc
}

func TestConnect_StoresEncryptedToken(t *testing.T) {
	fetcher := new(MockFetcher)
	credentialRepo, codec, uc := newPlatformFixture(fetcher)

	fetcher.On("VerifyToken", mock.Anything, "plain-token").Return(nil)
	codec.On("Encrypt", "plain-token").Return("iv:ciphertext", nil)
	credentialRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(a *model.ConnectedAccount) bool {
		return a.AccessToken == "iv:ciphertext" && a.Platform == "threads" && a.UserID == 7
	})).Return(nil)

	account, err := uc.Connect(context.Background(), 7, dto.ReqConnectPlatform{
		Platform:       "Threads",
		Token:          "plain-token",
		Username:       "someone",
		PlatformUserID: "threads-user-7",
	})

	assert.NoError(t, err)
	assert.Equal(t, "iv:ciphertext", account.AccessToken)
	credentialRepo.AssertExpectations(t)
}

func TestConnect_InvalidTokenNotStored(t *testing.T) {
	fetcher := new(MockFetcher)
	credentialRepo, codec, uc := newPlatformFixture(fetcher)

	fetcher.On("VerifyToken", mock.Anything, "bad-token").
		Return(&model.UpstreamError{StatusCode: 401, Body: "invalid token"})

	_, err := uc.Connect(context.Background(), 7, dto.ReqConnectPlatform{
		Platform: "threads",
		Token:    "bad-token",
	})

	var upstreamErr *model.UpstreamError
	assert.True(t, errors.As(err, &upstreamErr))
	codec.AssertNotCalled(t, "Encrypt", mock.Anything)
	credentialRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestConnect_UnsupportedPlatform(t *testing.T) {
	fetcher := new(MockFetcher)
	_, _, uc := newPlatformFixture(fetcher)

	_, err := uc.Connect(context.Background(), 7, dto.ReqConnectPlatform{Platform: "myspace", Token: "t"})
	assert.ErrorIs(t, err, model.ErrUnsupportedPlatform)
	fetcher.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
}

func TestDisconnect_NormalizesPlatform(t *testing.T) {
	fetcher := new(MockFetcher)
	credentialRepo, _, uc := newPlatformFixture(fetcher)

	credentialRepo.On("Delete", mock.Anything, int64(7), "threads").Return(nil)
	assert.NoError(t, uc.Disconnect(context.Background(), 7, "Threads"))
	credentialRepo.AssertExpectations(t)
}
