package youtube

import (
	"context"
	"fmt"
	"time"

	"social-hub/domain/model"
	"social-hub/domain/repository"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client adapts the YouTube Data API to the content fetcher contract:
// channel videos become top-level posts (with view/like/comment metrics) and
// comment threads become replies. When no API credentials are configured the
// client runs in mock mode and serves deterministic sample data, so the rest
// of the pipeline stays exercisable without a Google project.
type Client struct {
	service   *youtube.Service
	channelID string
}

// Config represents YouTube API configuration.
type Config struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ChannelID    string `json:"channel_id"`
	APIKey       string `json:"api_key"`
}

var _ repository.IContentFetcher = (*Client)(nil)

// NewYouTubeClient creates a fetcher in live or mock mode. Mock is used
// whenever no usable credentials are present.
func NewYouTubeClient(ctx context.Context, config *Config) (*Client, error) {
	if config == nil {
		return &Client{}, nil
	}

	// API key only: read-only service, enough for the fetch surface.
	if (config.AccessToken == "" || config.RefreshToken == "") && config.APIKey != "" {
		service, err := youtube.NewService(ctx, option.WithAPIKey(config.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service with API key: %w", err)
		}
		return &Client{service: service, channelID: config.ChannelID}, nil
	}

	if config.AccessToken == "" {
		return &Client{}, nil
	}

	oauth2Config := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Scopes:       []string{youtube.YoutubeReadonlyScope, youtube.YoutubeForceSslScope},
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{
		AccessToken:  config.AccessToken,
		RefreshToken: config.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-1 * time.Minute), // force refresh on first use
	}
	service, err := youtube.NewService(ctx, option.WithHTTPClient(oauth2Config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service, channelID: config.ChannelID}, nil
}

// Mock reports whether the client serves sample data.
func (c *Client) Mock() bool { return c.service == nil }

func (c *Client) FetchTopLevel(ctx context.Context, platformUserID, token string) ([]model.RawPost, error) {
	if c.Mock() {
		return mockPosts(), nil
	}

	channelID := c.channelID
	if platformUserID != "" {
		channelID = platformUserID
	}
	search, err := c.service.Search.List([]string{"id"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(25).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstream(err)
	}
	ids := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		return []model.RawPost{}, nil
	}

	videos, err := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstream(err)
	}
	posts := make([]model.RawPost, 0, len(videos.Items))
	for _, v := range videos.Items {
		post := model.RawPost{ID: v.Id, HasMetrics: true}
		if v.Snippet != nil {
			post.Text = v.Snippet.Title
			post.Timestamp = v.Snippet.PublishedAt
			if v.Snippet.Thumbnails != nil && v.Snippet.Thumbnails.High != nil {
				post.MediaURL = v.Snippet.Thumbnails.High.Url
			}
		}
		if v.Statistics != nil {
			post.Likes = int64(v.Statistics.LikeCount)
			post.Comments = int64(v.Statistics.CommentCount)
			post.Views = int64(v.Statistics.ViewCount)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (c *Client) FetchRepliesFor(ctx context.Context, platformPostID, token string) ([]model.RawReply, error) {
	if c.Mock() {
		return []model.RawReply{}, nil
	}

	threads, err := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(platformPostID).
		MaxResults(50).
		Context(ctx).
		Do()
	if err != nil {
		return nil, upstream(err)
	}
	replies := make([]model.RawReply, 0, len(threads.Items))
	for _, t := range threads.Items {
		if t.Snippet == nil || t.Snippet.TopLevelComment == nil || t.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		snippet := t.Snippet.TopLevelComment.Snippet
		replies = append(replies, model.RawReply{
			ID:        t.Snippet.TopLevelComment.Id,
			Text:      snippet.TextDisplay,
			Timestamp: snippet.PublishedAt,
		})
	}
	return replies, nil
}

// FetchOwnReplies returns nothing: the Data API exposes no "comments authored
// by this channel across other videos" listing.
func (c *Client) FetchOwnReplies(ctx context.Context, platformUserID, token string) ([]model.RawReply, error) {
	return []model.RawReply{}, nil
}

// VerifyToken accepts any token; YouTube access runs on the configured
// service credentials, not the pasted per-user token.
func (c *Client) VerifyToken(ctx context.Context, token string) error { return nil }

func upstream(err error) error {
	return &model.UpstreamError{Body: err.Error()}
}

// mockPosts reproduces the seed data served before API credentials are
// configured. Stable ids keep repeated syncs idempotent: rows refresh
// instead of multiplying.
func mockPosts() []model.RawPost {
	now := time.Now().UTC()
	return []model.RawPost{
		{
			ID:         "yt-mock-1",
			Text:       "🚀 Just launched my new social media management tool! #SaaS #Growth",
			Timestamp:  now.Add(-2 * time.Hour).Format(time.RFC3339),
			Likes:      120,
			Comments:   15,
			Views:      1500,
			HasMetrics: true,
		},
		{
			ID:         "yt-mock-2",
			Text:       "What's your favorite platform for community building in 2026?",
			Timestamp:  now.Add(-24 * time.Hour).Format(time.RFC3339),
			Likes:      85,
			Comments:   42,
			Views:      2100,
			HasMetrics: true,
		},
		{
			ID:         "yt-mock-3",
			Text:       "Check out our latest analytics deep-dive on YouTube!",
			MediaURL:   "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800",
			Timestamp:  now.Add(-48 * time.Hour).Format(time.RFC3339),
			Likes:      340,
			Comments:   28,
			Views:      12000,
			HasMetrics: true,
		},
	}
}
