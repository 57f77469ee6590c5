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

// PostRepository implements the content reconciler store on PostgreSQL.
type PostRepository struct {
	db *sql.DB
}

var _ repository.IPost = (*PostRepository)(nil)

func NewPostRepository(db *sql.DB) *PostRepository { return &PostRepository{db: db} }

const postColumns = `id, user_id, platform, platform_post_id, parent_post_id, content, media_url, post_type, likes_count, comments_count, views_count, published_at, created_at, updated_at`

// Upsert reconciles a content-sync record. The conflict clause deliberately
// leaves likes_count/comments_count/views_count alone: content syncs carry no
// counter data. parent_post_id is COALESCEd so a standalone-reply upsert can
// never clear a linkage written by the per-thread pass.
func (r *PostRepository) Upsert(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	q := `INSERT INTO posts (user_id, platform, platform_post_id, parent_post_id, content, media_url, post_type, published_at, created_at, updated_at)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	      ON CONFLICT (user_id, platform, platform_post_id) DO UPDATE SET
	        content = EXCLUDED.content,
	        media_url = EXCLUDED.media_url,
	        published_at = EXCLUDED.published_at,
	        parent_post_id = COALESCE(EXCLUDED.parent_post_id, posts.parent_post_id),
	        updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q,
		post.UserID, post.Platform, post.PlatformPostID, post.ParentPostID,
		post.Content, post.MediaURL, post.PostType, post.PublishedAt, now)
	return err
}

// UpsertWithMetrics is the counter-bearing variant used when the fetch path
// returns engagement counters alongside the content.
func (r *PostRepository) UpsertWithMetrics(ctx context.Context, post *model.Post) error {
	now := time.Now().UTC()
	q := `INSERT INTO posts (user_id, platform, platform_post_id, parent_post_id, content, media_url, post_type, likes_count, comments_count, views_count, published_at, created_at, updated_at)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
	      ON CONFLICT (user_id, platform, platform_post_id) DO UPDATE SET
	        content = EXCLUDED.content,
	        media_url = EXCLUDED.media_url,
	        likes_count = EXCLUDED.likes_count,
	        comments_count = EXCLUDED.comments_count,
	        views_count = EXCLUDED.views_count,
	        published_at = EXCLUDED.published_at,
	        parent_post_id = COALESCE(EXCLUDED.parent_post_id, posts.parent_post_id),
	        updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q,
		post.UserID, post.Platform, post.PlatformPostID, post.ParentPostID,
		post.Content, post.MediaURL, post.PostType,
		post.LikesCount, post.CommentsCount, post.ViewsCount,
		post.PublishedAt, now)
	return err
}

func (r *PostRepository) SetCommentCount(ctx context.Context, userID int64, platform, platformPostID string, count int) error {
	q := `UPDATE posts SET comments_count = $1, updated_at = $2 WHERE user_id = $3 AND platform = $4 AND platform_post_id = $5`
	_, err := r.db.ExecContext(ctx, q, count, time.Now().UTC(), userID, platform, platformPostID)
	return err
}

func (r *PostRepository) List(ctx context.Context, userID int64, filter model.PostFilter) ([]model.Post, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + postColumns + ` FROM posts WHERE user_id = $1`)
	args := []interface{}{userID}
	if filter.Platform != "" {
		args = append(args, strings.ToLower(filter.Platform))
		sb.WriteString(` AND platform = $` + strconv.Itoa(len(args)))
	}
	if filter.PostType != "" {
		args = append(args, filter.PostType)
		sb.WriteString(` AND post_type = $` + strconv.Itoa(len(args)))
	}
	if filter.ParentPostID != "" {
		args = append(args, filter.ParentPostID)
		sb.WriteString(` AND parent_post_id = $` + strconv.Itoa(len(args)))
	}
	sb.WriteString(` ORDER BY published_at DESC NULLS LAST, id DESC`)

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

func (r *PostRepository) GetByID(ctx context.Context, userID, id int64) (*model.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1 AND user_id = $2`, id, userID)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	p := &model.Post{}
	var parent, media sql.NullString
	var published sql.NullTime
	if err := row.Scan(
		&p.ID, &p.UserID, &p.Platform, &p.PlatformPostID, &parent,
		&p.Content, &media, &p.PostType,
		&p.LikesCount, &p.CommentsCount, &p.ViewsCount,
		&published, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if parent.Valid {
		p.ParentPostID = &parent.String
	}
	if media.Valid {
		p.MediaURL = &media.String
	}
	if published.Valid {
		t := published.Time
		p.PublishedAt = &t
	}
	return p, nil
}
