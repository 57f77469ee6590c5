package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"social-hub/domain/model"
	"social-hub/usecase"
)

func TestNormalizePost_WithoutMetrics(t *testing.T) {
	raw := model.RawPost{
		ID:        "tp-1",
		Text:      "hello world",
		MediaURL:  "https://cdn.example.com/a.jpg",
		Timestamp: "2025-06-01T10:00:00+0000",
		Likes:     99,
		Comments:  12,
		Views:     1000,
	}

	post := usecase.NormalizePost(7, "Threads", raw)

	assert.Equal(t, int64(7), post.UserID)
	assert.Equal(t, "threads", post.Platform)
	assert.Equal(t, "tp-1", post.PlatformPostID)
	assert.Equal(t, model.PostTypeTopLevel, post.PostType)
	assert.Nil(t, post.ParentPostID)
	assert.Equal(t, "hello world", post.Content)
	if assert.NotNil(t, post.MediaURL) {
		assert.Equal(t, "https://cdn.example.com/a.jpg", *post.MediaURL)
	}
	if assert.NotNil(t, post.PublishedAt) {
		assert.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), *post.PublishedAt)
	}
	// Counters only come along when the fetch path reports them.
	assert.Zero(t, post.LikesCount)
	assert.Zero(t, post.CommentsCount)
	assert.Zero(t, post.ViewsCount)
}

func TestNormalizePost_WithMetrics(t *testing.T) {
	raw := model.RawPost{
		ID:         "yt-1",
		Text:       "a video",
		Timestamp:  "2025-06-01T10:00:00Z",
		Likes:      120,
		Comments:   15,
		Views:      1500,
		HasMetrics: true,
	}

	post := usecase.NormalizePost(1, "youtube", raw)

	assert.Equal(t, int64(120), post.LikesCount)
	assert.Equal(t, int64(15), post.CommentsCount)
	assert.Equal(t, int64(1500), post.ViewsCount)
	assert.Nil(t, post.MediaURL)
}

func TestNormalizePost_UnparseableTimestamp(t *testing.T) {
	for _, ts := range []string{"", "yesterday", "2025-13-45T99:99:99Z"} {
		post := usecase.NormalizePost(1, "threads", model.RawPost{ID: "p", Timestamp: ts})
		assert.Nil(t, post.PublishedAt, "timestamp %q", ts)
	}
}

func TestNormalizeReply_ParentFromContext(t *testing.T) {
	raw := model.RawReply{ID: "r-1", Text: "nice", Timestamp: "2025-06-02T08:30:00Z"}

	reply := usecase.NormalizeReply(7, "threads", raw, "tp-1")

	assert.Equal(t, model.PostTypeReply, reply.PostType)
	if assert.NotNil(t, reply.ParentPostID) {
		assert.Equal(t, "tp-1", *reply.ParentPostID)
	}
}

// Replies from the own-replies pass must come out unlinked: their enclosing
// thread may belong to another user and was never fetched.
func TestNormalizeReply_StandaloneNeverLinked(t *testing.T) {
	for _, raw := range []model.RawReply{
		{ID: "r-2", Text: "elsewhere"},
		{ID: "r-3", Text: "on a foreign thread", Timestamp: "2025-06-02T08:30:00Z"},
	} {
		reply := usecase.NormalizeReply(7, "threads", raw, "")
		assert.Nil(t, reply.ParentPostID, "reply %s", raw.ID)
		assert.Equal(t, model.PostTypeReply, reply.PostType)
	}
}
