package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"social-hub/domain/dto"
	"social-hub/domain/model"
	"social-hub/domain/repository"
	"social-hub/infrastructure/cache"
	"social-hub/infrastructure/logger"
	"social-hub/infrastructure/persistence"
)

// Sync phases, logged as the pipeline advances. A sync that reaches syncDone
// succeeded even when some per-thread reply fetches were skipped.
const (
	syncStart           = "START"
	syncFetchCredential = "FETCH_CREDENTIAL"
	syncFetchTopLevel   = "FETCH_TOPLEVEL"
	syncFetchReplies    = "FETCH_REPLIES"
	syncUpsert          = "UPSERT"
	syncFetchStandalone = "FETCH_STANDALONE_REPLIES"
	syncUpsertStandal   = "UPSERT_STANDALONE"
	syncDone            = "DONE"
	syncFailed          = "FAILED"
)

// ISyncEventPublisher is the outbound-event seam; both the Pub/Sub and the
// Service Bus publishers satisfy it.
type ISyncEventPublisher interface {
	PublishSyncEvent(ctx context.Context, payload []byte) error
}

type ISyncUsecase interface {
	SyncPlatform(ctx context.Context, userID int64, platform string) (dto.SyncStats, error)
}

type syncUsecase struct {
	credentialRepo repository.ICredential
	codec          repository.ICredentialCodec
	postRepo       repository.IPost
	fetchers       map[string]repository.IContentFetcher
	rawFetchRepo   *persistence.RawFetchRepository
	overviewCache  *cache.OverviewCache
	publishers     []ISyncEventPublisher
}

func NewSyncUsecase(
	credentialRepo repository.ICredential,
	codec repository.ICredentialCodec,
	postRepo repository.IPost,
	fetchers map[string]repository.IContentFetcher,
	rawFetchRepo *persistence.RawFetchRepository,
	overviewCache *cache.OverviewCache,
	publishers ...ISyncEventPublisher,
) ISyncUsecase {
	return &syncUsecase{
		credentialRepo: credentialRepo,
		codec:          codec,
		postRepo:       postRepo,
		fetchers:       fetchers,
		rawFetchRepo:   rawFetchRepo,
		overviewCache:  overviewCache,
		publishers:     publishers,
	}
}

// SyncPlatform runs one full content sync for the user's account on the given
// platform: top-level posts first, then each post's reply thread, then the
// user's own replies as a last pass so replies to other people's threads are
// captured too. Credential and top-level failures abort the sync; a single
// thread's reply fetch failing is logged and skipped.
func (u *syncUsecase) SyncPlatform(ctx context.Context, userID int64, platform string) (dto.SyncStats, error) {
	var stats dto.SyncStats
	platform = strings.ToLower(platform)
	log := logger.GetLogger().WithField("user_id", userID).WithField("platform", platform)
	log.WithField("phase", syncStart).Info("Content sync started")

	fetcher, ok := u.fetchers[platform]
	if !ok {
		return stats, model.ErrUnsupportedPlatform
	}

	log.WithField("phase", syncFetchCredential).Debug("Loading credential")
	account, err := u.credentialRepo.GetByUserAndPlatform(ctx, userID, platform)
	if err != nil {
		log.WithField("phase", syncFailed).WithField("error", err).Error("Credential lookup failed")
		return stats, err
	}
	token, err := u.codec.Decrypt(account.AccessToken)
	if err != nil {
		log.WithField("phase", syncFailed).WithField("error", err).Error("Credential decryption failed")
		return stats, err
	}

	log.WithField("phase", syncFetchTopLevel).Debug("Fetching top-level posts")
	rawPosts, err := fetcher.FetchTopLevel(ctx, account.PlatformUserID, token)
	if err != nil {
		log.WithField("phase", syncFailed).WithField("error", err).Error("Top-level fetch failed")
		return stats, err
	}
	u.rawFetchRepo.Archive(ctx, userID, platform, "top_level", rawPosts)

	for _, rawPost := range rawPosts {
		post := NormalizePost(userID, platform, rawPost)
		log.WithField("phase", syncUpsert).WithField("platform_post_id", post.PlatformPostID).Debug("Upserting post")
		if rawPost.HasMetrics {
			err = u.postRepo.UpsertWithMetrics(ctx, post)
		} else {
			err = u.postRepo.Upsert(ctx, post)
		}
		if err != nil {
			log.WithField("phase", syncFailed).WithField("error", err).Error("Post upsert failed")
			return stats, err
		}
		stats.PostsSynced++

		log.WithField("phase", syncFetchReplies).WithField("platform_post_id", post.PlatformPostID).Debug("Fetching replies")
		rawReplies, err := fetcher.FetchRepliesFor(ctx, rawPost.ID, token)
		if err != nil {
			var upstreamErr *model.UpstreamError
			if errors.As(err, &upstreamErr) {
				log.WithField("platform_post_id", post.PlatformPostID).
					WithField("error", err).
					Warn("Skipping thread after reply fetch failure")
				stats.ThreadFetchFailures++
				continue
			}
			return stats, err
		}
		u.rawFetchRepo.Archive(ctx, userID, platform, "replies", rawReplies)

		for _, rawReply := range rawReplies {
			reply := NormalizeReply(userID, platform, rawReply, rawPost.ID)
			if err := u.postRepo.Upsert(ctx, reply); err != nil {
				log.WithField("phase", syncFailed).WithField("error", err).Error("Reply upsert failed")
				return stats, err
			}
			stats.RepliesSynced++
		}
		// Counter-bearing records keep the platform-reported comments_count;
		// pinning it to the fetched reply total only applies where the fetch
		// path has no counter of its own.
		if !rawPost.HasMetrics {
			if err := u.postRepo.SetCommentCount(ctx, userID, platform, rawPost.ID, len(rawReplies)); err != nil {
				log.WithField("phase", syncFailed).WithField("error", err).Error("Comment count update failed")
				return stats, err
			}
		}
	}

	log.WithField("phase", syncFetchStandalone).Debug("Fetching own replies")
	ownReplies, err := fetcher.FetchOwnReplies(ctx, account.PlatformUserID, token)
	if err != nil {
		var upstreamErr *model.UpstreamError
		if errors.As(err, &upstreamErr) {
			log.WithField("error", err).Warn("Skipping own-replies pass after fetch failure")
			ownReplies = nil
		} else {
			return stats, err
		}
	}
	u.rawFetchRepo.Archive(ctx, userID, platform, "own_replies", ownReplies)

	for _, rawReply := range ownReplies {
		reply := NormalizeReply(userID, platform, rawReply, "")
		log.WithField("phase", syncUpsertStandal).WithField("platform_post_id", reply.PlatformPostID).Debug("Upserting own reply")
		if err := u.postRepo.Upsert(ctx, reply); err != nil {
			log.WithField("phase", syncFailed).WithField("error", err).Error("Own-reply upsert failed")
			return stats, err
		}
		stats.StandaloneRepliesSynced++
	}

	u.overviewCache.Invalidate(ctx, userID, platform)
	u.publish(ctx, userID, platform, stats)

	log.WithField("phase", syncDone).
		WithField("posts_synced", stats.PostsSynced).
		WithField("replies_synced", stats.RepliesSynced).
		WithField("standalone_replies_synced", stats.StandaloneRepliesSynced).
		WithField("thread_fetch_failures", stats.ThreadFetchFailures).
		Info("Content sync finished")
	return stats, nil
}

func (u *syncUsecase) publish(ctx context.Context, userID int64, platform string, stats dto.SyncStats) {
	if len(u.publishers) == 0 {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"user_id":  userID,
		"platform": platform,
		"stats":    stats,
	})
	if err != nil {
		return
	}
	for _, publisher := range u.publishers {
		if publisher == nil {
			continue
		}
		if err := publisher.PublishSyncEvent(ctx, payload); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed publishing sync event")
		}
	}
}
