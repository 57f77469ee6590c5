package repository

import (
	"context"

	"social-hub/domain/model"
)

// IAnalytics persists the append-only follower time series and serves the
// overview aggregates.
type IAnalytics interface {
	InsertSnapshot(ctx context.Context, snapshot *model.FollowerSnapshot) error
	// LatestSnapshot returns (nil, nil) when no snapshot exists yet.
	LatestSnapshot(ctx context.Context, userID int64, platform string) (*model.FollowerSnapshot, error)
	// SnapshotBefore returns the newest snapshot older than the given number
	// of days, or (nil, nil) when none qualifies.
	SnapshotBefore(ctx context.Context, userID int64, platform string, days int) (*model.FollowerSnapshot, error)
	// BestPost returns the user's post with the most likes, or (nil, nil).
	BestPost(ctx context.Context, userID int64, platform string) (*model.Post, error)
	EngagementSummary(ctx context.Context, userID int64, platform string) (model.EngagementSummary, error)
}
