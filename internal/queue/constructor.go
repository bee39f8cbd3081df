package queue

import (
	"github.com/serenata/whistleblower/internal/models"
	"github.com/serenata/whistleblower/internal/service"
)

type Queue struct {
	ts service.TwitterService
}

func NewQueue(ts service.TwitterService) *Queue {
	return &Queue{ts: ts}
}

const TaskTypePublishTweet = "publish:tweet"

type PublishTweetPayload struct {
	Reimbursement models.Reimbursement `json:"reimbursement"`
}
