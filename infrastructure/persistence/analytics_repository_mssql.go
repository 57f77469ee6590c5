package persistence

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"social-hub/domain/model"
	"social-hub/domain/repository"
)

// AnalyticsRepositoryMSSQL is the SQL Server twin of AnalyticsRepository.
type AnalyticsRepositoryMSSQL struct{ db *sql.DB }

var _ repository.IAnalytics = (*AnalyticsRepositoryMSSQL)(nil)

func NewAnalyticsRepositoryMSSQL(db *sql.DB) *AnalyticsRepositoryMSSQL {
	return &AnalyticsRepositoryMSSQL{db: db}
}

func (r *AnalyticsRepositoryMSSQL) InsertSnapshot(ctx context.Context, snapshot *model.FollowerSnapshot) error {
	if snapshot.RecordedAt.IsZero() {
		snapshot.RecordedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dbo.[analytics_history] (user_id, platform, follower_count, recorded_at) VALUES (@p1, @p2, @p3, @p4)`,
		snapshot.UserID, strings.ToLower(snapshot.Platform), snapshot.FollowerCount, snapshot.RecordedAt)
	return err
}

func (r *AnalyticsRepositoryMSSQL) LatestSnapshot(ctx context.Context, userID int64, platform string) (*model.FollowerSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT TOP (1) id, user_id, platform, follower_count, recorded_at FROM dbo.[analytics_history]
		 WHERE user_id = @p1 AND platform = @p2 ORDER BY recorded_at DESC`,
		userID, strings.ToLower(platform))
	return scanSnapshot(row)
}

func (r *AnalyticsRepositoryMSSQL) SnapshotBefore(ctx context.Context, userID int64, platform string, days int) (*model.FollowerSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT TOP (1) id, user_id, platform, follower_count, recorded_at FROM dbo.[analytics_history]
		 WHERE user_id = @p1 AND platform = @p2 AND recorded_at < DATEADD(day, -@p3, SYSUTCDATETIME())
		 ORDER BY recorded_at DESC`,
		userID, strings.ToLower(platform), days)
	return scanSnapshot(row)
}

func (r *AnalyticsRepositoryMSSQL) BestPost(ctx context.Context, userID int64, platform string) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT TOP (1) `+postColumns+` FROM dbo.[posts] WHERE user_id = @p1 AND platform = @p2 ORDER BY likes_count DESC, id ASC`,
		userID, strings.ToLower(platform))
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *AnalyticsRepositoryMSSQL) EngagementSummary(ctx context.Context, userID int64, platform string) (model.EngagementSummary, error) {
	var summary model.EngagementSummary
	row := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(likes_count), 0), COALESCE(SUM(comments_count), 0), COALESCE(SUM(views_count), 0)
		 FROM dbo.[posts] WHERE user_id = @p1 AND platform = @p2`,
		userID, strings.ToLower(platform))
	if err := row.Scan(&summary.TotalLikes, &summary.TotalComments, &summary.TotalViews); err != nil {
		return summary, err
	}
	return summary, nil
}
