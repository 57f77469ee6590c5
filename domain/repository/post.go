package repository

import (
	"context"

	"social-hub/domain/model"
)

// IPost persists synced content items keyed by (user_id, platform,
// platform_post_id).
type IPost interface {
	// Upsert inserts the post or, on conflict, refreshes content, media_url,
	// published_at and updated_at. Engagement counters are left untouched;
	// parent_post_id is only ever filled in, never cleared.
	Upsert(ctx context.Context, post *model.Post) error
	// UpsertWithMetrics behaves like Upsert but additionally writes the
	// likes/comments/views counters. Used for records whose fetch path
	// carries counter data.
	UpsertWithMetrics(ctx context.Context, post *model.Post) error
	// SetCommentCount pins a top-level post's comments_count to the number of
	// replies fetched for it in the current sync pass.
	SetCommentCount(ctx context.Context, userID int64, platform, platformPostID string, count int) error
	List(ctx context.Context, userID int64, filter model.PostFilter) ([]model.Post, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Post, error)
}
