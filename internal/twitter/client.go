package twitter

import (
	"context"
	"errors"
	"time"
)

// Tweet is the subset of a timeline status this service cares about.
type Tweet struct {
	ID         int64
	Text       string
	ScreenName string
	CreatedAt  time.Time
}

// Client wraps the platform API. Implementations block until the call
// completes; there is no retry policy at this layer.
type Client interface {
	// UserTimeline returns one page of tweets for the profile, most recent
	// first. A maxID of zero means no upper bound; otherwise the page starts
	// at maxID inclusive.
	UserTimeline(ctx context.Context, screenName string, maxID int64) ([]Tweet, error)
	// Follow creates a one-way follow relationship. Returns ErrNotFound when
	// the handle does not exist.
	Follow(ctx context.Context, screenName string) error
	// Publish posts a new tweet with optional media attached.
	Publish(ctx context.Context, text string, media []byte) (*Tweet, error)
}

var ErrNotFound = errors.New("twitter: user not found")
