package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"social-hub/domain/model"
	"social-hub/domain/repository"
)

// AnalyticsRepository stores the append-only follower time series and serves
// the overview aggregates on PostgreSQL.
type AnalyticsRepository struct {
	db *sql.DB
}

var _ repository.IAnalytics = (*AnalyticsRepository)(nil)

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) InsertSnapshot(ctx context.Context, snapshot *model.FollowerSnapshot) error {
	if snapshot.RecordedAt.IsZero() {
		snapshot.RecordedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO analytics_history (user_id, platform, follower_count, recorded_at) VALUES ($1, $2, $3, $4)`,
		snapshot.UserID, strings.ToLower(snapshot.Platform), snapshot.FollowerCount, snapshot.RecordedAt)
	return err
}

func (r *AnalyticsRepository) LatestSnapshot(ctx context.Context, userID int64, platform string) (*model.FollowerSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, platform, follower_count, recorded_at FROM analytics_history
		 WHERE user_id = $1 AND platform = $2 ORDER BY recorded_at DESC LIMIT 1`,
		userID, strings.ToLower(platform))
	return scanSnapshot(row)
}

func (r *AnalyticsRepository) SnapshotBefore(ctx context.Context, userID int64, platform string, days int) (*model.FollowerSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, user_id, platform, follower_count, recorded_at FROM analytics_history
		 WHERE user_id = $1 AND platform = $2 AND recorded_at < NOW() - INTERVAL '%d days'
		 ORDER BY recorded_at DESC LIMIT 1`, days),
		userID, strings.ToLower(platform))
	return scanSnapshot(row)
}

func (r *AnalyticsRepository) BestPost(ctx context.Context, userID int64, platform string) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE user_id = $1 AND platform = $2 ORDER BY likes_count DESC, id ASC LIMIT 1`,
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

func (r *AnalyticsRepository) EngagementSummary(ctx context.Context, userID int64, platform string) (model.EngagementSummary, error) {
	var summary model.EngagementSummary
	row := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(likes_count), 0), COALESCE(SUM(comments_count), 0), COALESCE(SUM(views_count), 0)
		 FROM posts WHERE user_id = $1 AND platform = $2`,
		userID, strings.ToLower(platform))
	if err := row.Scan(&summary.TotalLikes, &summary.TotalComments, &summary.TotalViews); err != nil {
		return summary, err
	}
	return summary, nil
}

func scanSnapshot(row rowScanner) (*model.FollowerSnapshot, error) {
	s := &model.FollowerSnapshot{}
	err := row.Scan(&s.ID, &s.UserID, &s.Platform, &s.FollowerCount, &s.RecordedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
