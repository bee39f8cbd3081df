package twitter

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ChimeraCoder/anaconda"
	config "github.com/serenata/whistleblower/configs"
)

type anacondaClient struct {
	api *anaconda.TwitterApi
}

// NewClient builds a Client backed by the Twitter REST API using the four
// OAuth1 credentials from config.
func NewClient(cfg config.Config) Client {
	api := anaconda.NewTwitterApiWithCredentials(
		cfg.TwitterAccessTokenKey,
		cfg.TwitterAccessTokenSecret,
		cfg.TwitterConsumerKey,
		cfg.TwitterConsumerSecret,
	)
	return &anacondaClient{api: api}
}

func (c *anacondaClient) UserTimeline(ctx context.Context, screenName string, maxID int64) ([]Tweet, error) {
	v := url.Values{}
	v.Set("screen_name", screenName)
	v.Set("count", strconv.Itoa(PageSize))
	if maxID > 0 {
		v.Set("max_id", strconv.FormatInt(maxID, 10))
	}

	statuses, err := c.api.GetUserTimeline(v)
	if err != nil {
		return nil, fmt.Errorf("fetch timeline for %s: %w", screenName, err)
	}

	tweets := make([]Tweet, 0, len(statuses))
	for _, status := range statuses {
		tweets = append(tweets, fromStatus(status))
	}
	return tweets, nil
}

func (c *anacondaClient) Follow(ctx context.Context, screenName string) error {
	_, err := c.api.FollowUser(screenName)
	if err == nil {
		return nil
	}

	var apiErr *anaconda.ApiError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return fmt.Errorf("follow %s: %w", screenName, err)
}

func (c *anacondaClient) Publish(ctx context.Context, text string, media []byte) (*Tweet, error) {
	v := url.Values{}
	if len(media) > 0 {
		uploaded, err := c.api.UploadMedia(base64.StdEncoding.EncodeToString(media))
		if err != nil {
			return nil, fmt.Errorf("upload media: %w", err)
		}
		v.Set("media_ids", uploaded.MediaIDString)
	}

	status, err := c.api.PostTweet(text, v)
	if err != nil {
		return nil, fmt.Errorf("post tweet: %w", err)
	}

	tweet := fromStatus(status)
	return &tweet, nil
}

func fromStatus(status anaconda.Tweet) Tweet {
	createdAt, err := status.CreatedAtTime()
	if err != nil {
		slog.Info(err.Error())
	}
	return Tweet{
		ID:         status.Id,
		Text:       status.Text,
		ScreenName: status.User.ScreenName,
		CreatedAt:  createdAt,
	}
}
