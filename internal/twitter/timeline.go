package twitter

import "context"

const (
	// PageSize is the timeline page size requested from the API.
	PageSize = 20
	// lastPageThreshold marks a page as final. The API occasionally returns
	// 19 tweets for a full page, so the cutoff sits one below PageSize.
	lastPageThreshold = 19
)

// TimelineIterator walks a profile's timeline backwards, one page per call.
// The cursor is the last seen tweet ID, passed as an inclusive upper bound;
// the boundary tweet echoed at the start of each follow-up page is dropped.
// The iterator is finite and not restartable.
type TimelineIterator struct {
	client     Client
	screenName string
	maxID      int64
	started    bool
	done       bool
}

func NewTimelineIterator(client Client, screenName string) *TimelineIterator {
	return &TimelineIterator{client: client, screenName: screenName}
}

// Next returns the next batch of tweets, or nil once the timeline is
// exhausted.
func (it *TimelineIterator) Next(ctx context.Context) ([]Tweet, error) {
	if it.done {
		return nil, nil
	}

	tweets, err := it.client.UserTimeline(ctx, it.screenName, it.maxID)
	if err != nil {
		return nil, err
	}

	if it.started && len(tweets) > 0 {
		tweets = tweets[1:]
	}
	it.started = true

	if len(tweets) > 0 {
		it.maxID = tweets[len(tweets)-1].ID
	}
	if len(tweets) < lastPageThreshold {
		it.done = true
	}
	if len(tweets) == 0 {
		return nil, nil
	}
	return tweets, nil
}
