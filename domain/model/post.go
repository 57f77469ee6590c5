package model

import "time"

// Post type tags assigned by the sync pipeline depending on which fetch path
// produced the record.
const (
	PostTypeTopLevel = "TOP_LEVEL"
	PostTypeReply    = "REPLY"
)

// Post is a synced content item, unique per (user_id, platform, platform_post_id).
// ParentPostID is a weak reference to another post's platform_post_id within the
// same user/platform scope; nil for top-level posts and standalone replies.
type Post struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	Platform       string     `json:"platform"`
	PlatformPostID string     `json:"platform_post_id"`
	ParentPostID   *string    `json:"parent_post_id,omitempty"`
	Content        string     `json:"content"`
	MediaURL       *string    `json:"media_url,omitempty"`
	PostType       string     `json:"post_type"`
	LikesCount     int64      `json:"likes_count"`
	CommentsCount  int64      `json:"comments_count"`
	ViewsCount     int64      `json:"views_count"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RawPost is a top-level record as returned by a platform API, before
// normalization. Metrics are only meaningful when HasMetrics is set; the
// Threads API does not return them on the list endpoint while YouTube does.
type RawPost struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	MediaURL  string `json:"media_url"`
	Timestamp string `json:"timestamp"`

	Likes      int64 `json:"likes"`
	Comments   int64 `json:"comments"`
	Views      int64 `json:"views"`
	HasMetrics bool  `json:"has_metrics"`
}

// RawReply is a reply record as returned by a platform API. It carries no
// parent reference of its own: the per-thread fetch path knows the parent
// from context, and the own-replies path stores replies unlinked.
type RawReply struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	MediaURL  string `json:"media_url"`
	Timestamp string `json:"timestamp"`
}

// PostFilter narrows GET /posts listings. Zero values mean "no filter".
type PostFilter struct {
	Platform     string
	PostType     string
	ParentPostID string
}
