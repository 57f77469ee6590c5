package persistence

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"social-hub/domain/model"
	"social-hub/domain/repository"
)

// PostRepositoryMSSQL implements the content reconciler store for SQL
// Server/Azure SQL using MERGE upserts.
type PostRepositoryMSSQL struct{ db *sql.DB }

var _ repository.IPost = (*PostRepositoryMSSQL)(nil)

func NewPostRepositoryMSSQL(db *sql.DB) *PostRepositoryMSSQL { return &PostRepositoryMSSQL{db: db} }

func (r *PostRepositoryMSSQL) Upsert(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	q := `MERGE dbo.[posts] AS target
USING (VALUES (@p1, @p2, @p3)) AS src(user_id, platform, platform_post_id)
ON target.user_id = src.user_id AND target.platform = src.platform AND target.platform_post_id = src.platform_post_id
WHEN MATCHED THEN UPDATE SET
  content = @p5,
  media_url = @p6,
  published_at = @p8,
  parent_post_id = COALESCE(@p4, target.parent_post_id),
  updated_at = @p9
WHEN NOT MATCHED THEN
  INSERT (user_id, platform, platform_post_id, parent_post_id, content, media_url, post_type, published_at, created_at, updated_at)
  VALUES (src.user_id, src.platform, src.platform_post_id, @p4, @p5, @p6, @p7, @p8, @p9, @p9);`
	_, err := r.db.ExecContext(ctx, q,
		post.UserID, post.Platform, post.PlatformPostID, post.ParentPostID,
		post.Content, post.MediaURL, post.PostType, post.PublishedAt, now)
	return err
}

func (r *PostRepositoryMSSQL) UpsertWithMetrics(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	q := `MERGE dbo.[posts] AS target
USING (VALUES (@p1, @p2, @p3)) AS src(user_id, platform, platform_post_id)
ON target.user_id = src.user_id AND target.platform = src.platform AND target.platform_post_id = src.platform_post_id
WHEN MATCHED THEN UPDATE SET
  content = @p5,
  media_url = @p6,
  likes_count = @p8,
  comments_count = @p9,
  views_count = @p10,
  published_at = @p11,
  parent_post_id = COALESCE(@p4, target.parent_post_id),
  updated_at = @p12
WHEN NOT MATCHED THEN
  INSERT (user_id, platform, platform_post_id, parent_post_id, content, media_url, post_type, likes_count, comments_count, views_count, published_at, created_at, updated_at)
  VALUES (src.user_id, src.platform, src.platform_post_id, @p4, @p5, @p6, @p7, @p8, @p9, @p10, @p11, @p12, @p12);`
	_, err := r.db.ExecContext(ctx, q,
		post.UserID, post.Platform, post.PlatformPostID, post.ParentPostID,
		post.Content, post.MediaURL, post.PostType,
		post.LikesCount, post.CommentsCount, post.ViewsCount,
		post.PublishedAt, now)
	return err
}

func (r *PostRepositoryMSSQL) SetCommentCount(ctx context.Context, userID int64, platform, platformPostID string, count int) error {
	q := `UPDATE dbo.[posts] SET comments_count = @p1, updated_at = @p2 WHERE user_id = @p3 AND platform = @p4 AND platform_post_id = @p5`
	_, err := r.db.ExecContext(ctx, q, count, time.Now().UTC(), userID, platform, platformPostID)
	return err
}

func (r *PostRepositoryMSSQL) List(ctx context.Context, userID int64, filter model.PostFilter) ([]model.Post, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + postColumns + ` FROM dbo.[posts] WHERE user_id = @p1`)
	args := []interface{}{userID}
	if filter.Platform != "" {
		args = append(args, strings.ToLower(filter.Platform))
		sb.WriteString(` AND platform = @p` + strconv.Itoa(len(args)))
	}
	if filter.PostType != "" {
		args = append(args, filter.PostType)
		sb.WriteString(` AND post_type = @p` + strconv.Itoa(len(args)))
	}
	if filter.ParentPostID != "" {
		args = append(args, filter.ParentPostID)
		sb.WriteString(` AND parent_post_id = @p` + strconv.Itoa(len(args)))
	}
	// SQL Server has no NULLS LAST; CASE pushes unknown publish times to the end.
	sb.WriteString(` ORDER BY CASE WHEN published_at IS NULL THEN 1 ELSE 0 END, published_at DESC, id DESC`)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *PostRepositoryMSSQL) GetByID(ctx context.Context, userID, id int64) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM dbo.[posts] WHERE id = @p1 AND user_id = @p2`, id, userID)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}
