package job

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/serenata/whistleblower/internal/queue"
	"github.com/serenata/whistleblower/internal/service"
)

// PostQueueJob periodically picks up the flagged reimbursements that have
// not been tweeted yet and enqueues one publish task per reimbursement.
type PostQueueJob struct {
	ss          service.SuspicionsService
	ts          service.TwitterService
	asynqClient *asynq.Client
}

func NewPostQueueJob(ss service.SuspicionsService, ts service.TwitterService, asynqClient *asynq.Client) *PostQueueJob {
	return &PostQueueJob{
		ss:          ss,
		ts:          ts,
		asynqClient: asynqClient,
	}
}

func (j *PostQueueJob) PostQueue() {
	ctx := context.Background()

	reimbursements, err := j.ss.FlaggedReimbursements(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	pending, err := j.ts.PostQueue(ctx, reimbursements)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, r := range pending {
		payload := queue.PublishTweetPayload{Reimbursement: r}
		if err := queue.EnqueueReimbursement(j.asynqClient, payload); err != nil {
			slog.Info(err.Error())
		}
	}
}
