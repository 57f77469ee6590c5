package usecase

import (
	"context"
	"strings"

	"social-hub/domain/dto"
	"social-hub/domain/model"
	"social-hub/domain/repository"
	"social-hub/infrastructure/logger"
)

type IPlatformUsecase interface {
	// Connect verifies the pasted token against the platform API and stores
	// it encrypted. An invalid token is rejected without writing anything.
	Connect(ctx context.Context, userID int64, req dto.ReqConnectPlatform) (*model.ConnectedAccount, error)
	Disconnect(ctx context.Context, userID int64, platform string) error
	ListAccounts(ctx context.Context, userID int64) ([]model.ConnectedAccount, error)
}

type platformUsecase struct {
	credentialRepo repository.ICredential
	codec          repository.ICredentialCodec
	fetchers       map[string]repository.IContentFetcher
}

func NewPlatformUsecase(
	credentialRepo repository.ICredential,
	codec repository.ICredentialCodec,
	fetchers map[string]repository.IContentFetcher,
) IPlatformUsecase {
	return &platformUsecase{
		credentialRepo: credentialRepo,
		codec:          codec,
		fetchers:       fetchers,
	}
}

func (u *platformUsecase) Connect(ctx context.Context, userID int64, req dto.ReqConnectPlatform) (*model.ConnectedAccount, error) {
	platform := strings.ToLower(req.Platform)
	fetcher, ok := u.fetchers[platform]
	if !ok {
		return nil, model.ErrUnsupportedPlatform
	}

	if err := fetcher.VerifyToken(ctx, req.Token); err != nil {
		logger.GetLogger().
			WithField("user_id", userID).
			WithField("platform", platform).
			WithField("error", err).
			Warn("Token verification failed")
		return nil, err
	}

	encrypted, err := u.codec.Encrypt(req.Token)
	if err != nil {
		return nil, err
	}
	account := &model.ConnectedAccount{
		UserID:           userID,
		Platform:         platform,
		AccessToken:      encrypted,
		PlatformUserID:   req.PlatformUserID,
		PlatformUsername: req.Username,
	}
	if err := u.credentialRepo.Upsert(ctx, account); err != nil {
		return nil, err
	}
	logger.GetLogger().
		WithField("user_id", userID).
		WithField("platform", platform).
		Info("Platform connected")
	return account, nil
}

func (u *platformUsecase) Disconnect(ctx context.Context, userID int64, platform string) error {
	return u.credentialRepo.Delete(ctx, userID, strings.ToLower(platform))
}

func (u *platformUsecase) ListAccounts(ctx context.Context, userID int64) ([]model.ConnectedAccount, error) {
	return u.credentialRepo.ListByUser(ctx, userID)
}
