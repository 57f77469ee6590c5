package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsureSchema creates the aggregator tables if they are missing. Safe to
// call at every startup; all statements are idempotent. The unique key on
// posts (user_id, platform, platform_post_id) is the sole concurrency
// safeguard against duplicate inserts from overlapping syncs.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			user_name VARCHAR(100) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS connected_accounts (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			platform VARCHAR(50) NOT NULL,
			access_token TEXT NOT NULL,
			platform_user_id VARCHAR(255),
			platform_username VARCHAR(255),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT connected_accounts_user_platform_key UNIQUE (user_id, platform)
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			platform VARCHAR(50) NOT NULL,
			platform_post_id VARCHAR(255) NOT NULL,
			parent_post_id VARCHAR(255),
			content TEXT,
			media_url TEXT,
			post_type VARCHAR(20) NOT NULL DEFAULT 'TOP_LEVEL',
			likes_count BIGINT NOT NULL DEFAULT 0,
			comments_count BIGINT NOT NULL DEFAULT 0,
			views_count BIGINT NOT NULL DEFAULT 0,
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT posts_user_platform_post_key UNIQUE (user_id, platform, platform_post_id)
		)`,
		`CREATE TABLE IF NOT EXISTS analytics_history (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			platform VARCHAR(50) NOT NULL,
			follower_count BIGINT NOT NULL DEFAULT 0,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS posts_user_platform_published_idx
			ON posts (user_id, platform, published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS analytics_history_user_platform_recorded_idx
			ON analytics_history (user_id, platform, recorded_at DESC)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
