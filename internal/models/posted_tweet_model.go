package models

import "time"

type PostedTweet struct {
	ID          int64     `db:"id" json:"id"`
	Integration string    `db:"integration" json:"integration"`
	Target      string    `db:"target" json:"target"`
	TweetID     int64     `db:"tweet_id" json:"tweet_id"`
	ScreenName  string    `db:"screen_name" json:"screen_name"`
	Text        string    `db:"text" json:"text"`
	DocumentID  int64     `db:"document_id" json:"document_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

const (
	IntegrationChamberOfDeputies = "chamber_of_deputies"
	TargetTwitter                = "twitter"
)
