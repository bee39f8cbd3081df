package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/serenata/whistleblower/internal/service"
)

func (q *Queue) HandlePublishTweetTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishTweetPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	record, err := q.ts.PublishReimbursement(ctx, &payload.Reimbursement)
	if err != nil {
		// no handle to mention; retrying will not grow one
		if errors.Is(err, service.ErrNoProfile) {
			slog.Warn(err.Error())
			return nil
		}
		return err
	}

	slog.Info("tweet published", "document_id", record.DocumentID, "tweet_id", record.TweetID)
	return nil
}
