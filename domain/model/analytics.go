package model

import "time"

// FollowerSnapshot is one point of the append-only follower time series.
// Rows are only ever inserted, never updated.
type FollowerSnapshot struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Platform      string    `json:"platform"`
	FollowerCount int64     `json:"follower_count"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// EngagementSummary holds summed counters across a user's posts on one platform.
type EngagementSummary struct {
	TotalLikes    int64 `json:"total_likes"`
	TotalComments int64 `json:"total_comments"`
	TotalViews    int64 `json:"total_views"`
}

// AnalyticsOverview is the aggregate returned by GET /analytics/overview:
// the latest snapshot, the latest snapshot older than 7 days (for
// week-over-week growth), the post with the most likes, and summed engagement.
type AnalyticsOverview struct {
	Current  *FollowerSnapshot `json:"current"`
	Previous *FollowerSnapshot `json:"previous"`
	BestPost *Post             `json:"best_post,omitempty"`
	Summary  EngagementSummary `json:"summary"`
}
