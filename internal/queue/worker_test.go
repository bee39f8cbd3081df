package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/serenata/whistleblower/internal/models"
	"github.com/serenata/whistleblower/internal/service"
	"github.com/stretchr/testify/require"
)

type fakeTwitterService struct {
	published []models.Reimbursement
	err       error
}

func (s *fakeTwitterService) PostQueue(ctx context.Context, rs []models.Reimbursement) ([]models.Reimbursement, error) {
	return rs, nil
}

func (s *fakeTwitterService) FollowCongresspeople(ctx context.Context) error {
	return nil
}

func (s *fakeTwitterService) ProvisionRecords(ctx context.Context) error {
	return nil
}

func (s *fakeTwitterService) PublishReimbursement(ctx context.Context, r *models.Reimbursement) (*models.PostedTweet, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.published = append(s.published, *r)
	return &models.PostedTweet{DocumentID: r.DocumentID, TweetID: 1}, nil
}

func publishTask(t *testing.T, r models.Reimbursement) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(PublishTweetPayload{Reimbursement: r})
	require.NoError(t, err)
	return asynq.NewTask(TaskTypePublishTweet, payload)
}

func TestHandlePublishTweetTask(t *testing.T) {
	ts := &fakeTwitterService{}
	q := NewQueue(ts)

	r := models.Reimbursement{DocumentID: 999, TwitterProfile: "joe123", State: "SP"}
	err := q.HandlePublishTweetTask(context.Background(), publishTask(t, r))
	require.NoError(t, err)
	require.Len(t, ts.published, 1)
	require.Equal(t, int64(999), ts.published[0].DocumentID)
}

func TestHandlePublishTweetTaskNoProfileIsNotRetried(t *testing.T) {
	ts := &fakeTwitterService{err: service.ErrNoProfile}
	q := NewQueue(ts)

	err := q.HandlePublishTweetTask(context.Background(), publishTask(t, models.Reimbursement{DocumentID: 1}))
	require.NoError(t, err, "a reimbursement without a handle must not be retried")
}

func TestHandlePublishTweetTaskFailurePropagates(t *testing.T) {
	ts := &fakeTwitterService{err: errors.New("rate limited")}
	q := NewQueue(ts)

	err := q.HandlePublishTweetTask(context.Background(), publishTask(t, models.Reimbursement{DocumentID: 1, TwitterProfile: "joe123"}))
	require.Error(t, err)
}

func TestHandlePublishTweetTaskBadPayload(t *testing.T) {
	q := NewQueue(&fakeTwitterService{})

	err := q.HandlePublishTweetTask(context.Background(), asynq.NewTask(TaskTypePublishTweet, []byte("{")))
	require.Error(t, err)
}
