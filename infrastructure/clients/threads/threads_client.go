package threads

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"social-hub/domain/model"
	"social-hub/domain/repository"

	"github.com/google/go-querystring/query"
)

// Client calls the Threads Graph API. Every method performs a single
// unpaginated GET; non-2xx responses and transport failures come back as
// *model.UpstreamError so the sync orchestrator can decide what is fatal.
type Client struct {
	host       string
	httpClient *http.Client
}

var _ repository.IContentFetcher = (*Client)(nil)

func NewThreadsClient(host string) *Client {
	return &Client{
		host:       host,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type listQuery struct {
	Fields      string `url:"fields"`
	AccessToken string `url:"access_token"`
}

type threadsEnvelope struct {
	Data []threadsRecord `json:"data"`
}

type threadsRecord struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	MediaURL  string `json:"media_url"`
	Timestamp string `json:"timestamp"`
}

func (c *Client) FetchTopLevel(ctx context.Context, platformUserID, token string) ([]model.RawPost, error) {
	records, err := c.list(ctx, fmt.Sprintf("%s/v1.0/%s/threads", c.host, platformUserID), listQuery{
		Fields:      "id,text,media_url,timestamp",
		AccessToken: token,
	})
	if err != nil {
		return nil, err
	}
	posts := make([]model.RawPost, 0, len(records))
	for _, rec := range records {
		posts = append(posts, model.RawPost{
			ID:        rec.ID,
			Text:      rec.Text,
			MediaURL:  rec.MediaURL,
			Timestamp: rec.Timestamp,
		})
	}
	return posts, nil
}

func (c *Client) FetchRepliesFor(ctx context.Context, platformPostID, token string) ([]model.RawReply, error) {
	records, err := c.list(ctx, fmt.Sprintf("%s/v1.0/%s/replies", c.host, platformPostID), listQuery{
		Fields:      "id,text,media_url,timestamp",
		AccessToken: token,
	})
	if err != nil {
		return nil, err
	}
	return toRawReplies(records), nil
}

// FetchOwnReplies lists the user's replies wherever they were posted. The
// enclosing threads are not fetched, so no parent field is requested; these
// records are stored unlinked.
func (c *Client) FetchOwnReplies(ctx context.Context, platformUserID, token string) ([]model.RawReply, error) {
	records, err := c.list(ctx, fmt.Sprintf("%s/v1.0/%s/replies", c.host, platformUserID), listQuery{
		Fields:      "id,text,media_url,timestamp",
		AccessToken: token,
	})
	if err != nil {
		return nil, err
	}
	return toRawReplies(records), nil
}

// VerifyToken resolves the token owner's profile; any failure means the
// pasted token is unusable and the connect request is rejected.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	body, err := c.get(ctx, fmt.Sprintf("%s/v1.0/me", c.host), listQuery{
		Fields:      "id,username",
		AccessToken: token,
	})
	if err != nil {
		return err
	}
	var me struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &me); err != nil || me.ID == "" {
		return &model.UpstreamError{Body: "token verification returned no profile"}
	}
	return nil
}

func (c *Client) list(ctx context.Context, endpoint string, q listQuery) ([]threadsRecord, error) {
	body, err := c.get(ctx, endpoint, q)
	if err != nil {
		return nil, err
	}
	var envelope threadsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &model.UpstreamError{Body: fmt.Sprintf("malformed response: %v", err)}
	}
	return envelope.Data, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q listQuery) ([]byte, error) {
	values, err := query.Values(q)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &model.UpstreamError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &model.UpstreamError{StatusCode: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func toRawReplies(records []threadsRecord) []model.RawReply {
	replies := make([]model.RawReply, 0, len(records))
	for _, rec := range records {
		replies = append(replies, model.RawReply{
			ID:        rec.ID,
			Text:      rec.Text,
			MediaURL:  rec.MediaURL,
			Timestamp: rec.Timestamp,
		})
	}
	return replies
}
