package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/serenata/whistleblower/internal/models"
)

type PostedTweetRepository interface {
	Create(ctx context.Context, pt *models.PostedTweet) (int64, error)
	CreateMany(ctx context.Context, pts []*models.PostedTweet) error
	ListDocumentIDs(ctx context.Context, target string) ([]int64, error)
	ListByTarget(ctx context.Context, target string) ([]*models.PostedTweet, error)
	GetByDocumentID(ctx context.Context, documentID int64) (*models.PostedTweet, error)
}

type postedTweetRepository struct {
	db *sql.DB
}

func NewPostedTweetRepository(db *sql.DB) PostedTweetRepository {
	return &postedTweetRepository{db: db}
}

func (r *postedTweetRepository) Create(ctx context.Context, pt *models.PostedTweet) (int64, error) {
	query := `
		INSERT INTO posted_tweets (integration, target, tweet_id, screen_name, text, document_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, pt.Integration, pt.Target, pt.TweetID, pt.ScreenName, pt.Text, pt.DocumentID, pt.CreatedAt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postedTweetRepository) CreateMany(ctx context.Context, pts []*models.PostedTweet) error {
	if len(pts) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	query := `
		INSERT INTO posted_tweets (integration, target, tweet_id, screen_name, text, document_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, pt := range pts {
		if _, err := tx.ExecContext(ctx, query, pt.Integration, pt.Target, pt.TweetID, pt.ScreenName, pt.Text, pt.DocumentID, pt.CreatedAt); err != nil {
			tx.Rollback()
			slog.Info(err.Error())
			return err
		}
	}

	return tx.Commit()
}

func (r *postedTweetRepository) ListDocumentIDs(ctx context.Context, target string) ([]int64, error) {
	query := `SELECT document_id FROM posted_tweets WHERE target = $1`

	rows, err := r.db.QueryContext(ctx, query, target)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postedTweetRepository) ListByTarget(ctx context.Context, target string) ([]*models.PostedTweet, error) {
	query := `
		SELECT id, integration, target, tweet_id, screen_name, text, document_id, created_at
		FROM posted_tweets WHERE target = $1 ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, target)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var pts []*models.PostedTweet
	for rows.Next() {
		var pt models.PostedTweet
		err := rows.Scan(&pt.ID, &pt.Integration, &pt.Target, &pt.TweetID, &pt.ScreenName, &pt.Text, &pt.DocumentID, &pt.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		pts = append(pts, &pt)
	}
	return pts, rows.Err()
}

func (r *postedTweetRepository) GetByDocumentID(ctx context.Context, documentID int64) (*models.PostedTweet, error) {
	query := `
		SELECT id, integration, target, tweet_id, screen_name, text, document_id, created_at
		FROM posted_tweets WHERE document_id = $1
	`
	row := r.db.QueryRowContext(ctx, query, documentID)

	var pt models.PostedTweet
	err := row.Scan(&pt.ID, &pt.Integration, &pt.Target, &pt.TweetID, &pt.ScreenName, &pt.Text, &pt.DocumentID, &pt.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &pt, nil
}
