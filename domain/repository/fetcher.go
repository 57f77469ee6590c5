package repository

import (
	"context"

	"social-hub/domain/model"
)

// IContentFetcher wraps one platform's API. Each call is a single unpaginated
// GET; failures surface as *model.UpstreamError and the caller decides whether
// they are fatal for the whole sync or skippable per item.
type IContentFetcher interface {
	// FetchTopLevel returns the user's primary posts.
	FetchTopLevel(ctx context.Context, platformUserID, token string) ([]model.RawPost, error)
	// FetchRepliesFor returns the replies under one top-level post.
	FetchRepliesFor(ctx context.Context, platformPostID, token string) ([]model.RawReply, error)
	// FetchOwnReplies returns replies authored by the user whose parent
	// thread may not be owned or fetched by the user.
	FetchOwnReplies(ctx context.Context, platformUserID, token string) ([]model.RawReply, error)
	// VerifyToken checks the token against the platform API before it is
	// stored. Platforms without a verification endpoint return nil.
	VerifyToken(ctx context.Context, token string) error
}
