package usecase

import (
	"strings"
	"time"

	"social-hub/domain/model"
)

// Timestamp layouts seen across platform APIs. Threads emits the second form
// (numeric zone offset without a colon), which time.RFC3339 rejects.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// parseTimestamp returns nil when the value is absent or unparseable; a post
// without a usable timestamp is stored with a NULL published_at rather than
// being dropped.
func parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// NormalizePost maps a raw top-level record onto the canonical post shape.
// Counters are carried over only when the fetch path provided them.
func NormalizePost(userID int64, platform string, raw model.RawPost) *model.Post {
	post := &model.Post{
		UserID:         userID,
		Platform:       strings.ToLower(platform),
		PlatformPostID: raw.ID,
		Content:        raw.Text,
		MediaURL:       optionalString(raw.MediaURL),
		PostType:       model.PostTypeTopLevel,
		PublishedAt:    parseTimestamp(raw.Timestamp),
	}
	if raw.HasMetrics {
		post.LikesCount = raw.Likes
		post.CommentsCount = raw.Comments
		post.ViewsCount = raw.Views
	}
	return post
}

// NormalizeReply maps a raw reply onto the canonical post shape. parentID is
// the platform post id of the enclosing thread and comes from the per-thread
// fetch context; the standalone own-replies pass passes "" and the reply is
// stored without a parent link, since its thread may belong to another user
// and was never fetched.
func NormalizeReply(userID int64, platform string, raw model.RawReply, parentID string) *model.Post {
	return &model.Post{
		UserID:         userID,
		Platform:       strings.ToLower(platform),
		PlatformPostID: raw.ID,
		ParentPostID:   optionalString(parentID),
		Content:        raw.Text,
		MediaURL:       optionalString(raw.MediaURL),
		PostType:       model.PostTypeReply,
		PublishedAt:    parseTimestamp(raw.Timestamp),
	}
}
