package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/serenata/whistleblower/configs"
	"github.com/serenata/whistleblower/internal/models"
	"github.com/serenata/whistleblower/internal/profiles"
	"github.com/serenata/whistleblower/internal/repository"
	"github.com/serenata/whistleblower/internal/twitter"
)

type TwitterService interface {
	PostQueue(ctx context.Context, rs []models.Reimbursement) ([]models.Reimbursement, error)
	FollowCongresspeople(ctx context.Context) error
	ProvisionRecords(ctx context.Context) error
	PublishReimbursement(ctx context.Context, r *models.Reimbursement) (*models.PostedTweet, error)
}

type twitterService struct {
	cfg      config.Config
	client   twitter.Client
	repo     repository.PostedTweetRepository
	profiles *profiles.Dataset
	builder  *TweetBuilder
	resolver *twitter.LinkResolver
	archive  *ArchiveService
}

func NewTwitterService(
	cfg config.Config,
	client twitter.Client,
	repo repository.PostedTweetRepository,
	ds *profiles.Dataset,
	builder *TweetBuilder,
	resolver *twitter.LinkResolver,
	archive *ArchiveService) TwitterService {
	return &twitterService{
		cfg:      cfg,
		client:   client,
		repo:     repo,
		profiles: ds,
		builder:  builder,
		resolver: resolver,
		archive:  archive,
	}
}

// PostQueue returns the reimbursements not yet posted to the account,
// preserving input order. Best effort only: nothing stops a concurrent run
// from posting the same document twice.
func (s *twitterService) PostQueue(ctx context.Context, rs []models.Reimbursement) ([]models.Reimbursement, error) {
	ids, err := s.repo.ListDocumentIDs(ctx, models.TargetTwitter)
	if err != nil {
		return nil, err
	}

	posted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		posted[id] = struct{}{}
	}

	queue := make([]models.Reimbursement, 0, len(rs))
	for _, r := range rs {
		if _, ok := posted[r.DocumentID]; !ok {
			queue = append(queue, r)
		}
	}
	return queue, nil
}

// FollowCongresspeople follows every handle in the social accounts dataset.
// Missing profiles are logged and skipped; the iteration never aborts.
func (s *twitterService) FollowCongresspeople(ctx context.Context) error {
	handles, err := s.profiles.Handles()
	if err != nil {
		return err
	}

	for _, handle := range handles {
		if err := s.client.Follow(ctx, handle); err != nil {
			if errors.Is(err, twitter.ErrNotFound) {
				slog.Warn(fmt.Sprintf("%s profile not found", handle))
				continue
			}
			slog.Warn(fmt.Sprintf("could not follow %s: %v", handle, err))
		}
	}
	return nil
}

// ProvisionRecords rebuilds the posted_tweets table from the account's
// timeline. Tweets whose document ID cannot be recovered are skipped.
func (s *twitterService) ProvisionRecords(ctx context.Context) error {
	it := twitter.NewTimelineIterator(s.client, s.cfg.TwitterProfile)
	for {
		batch, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if batch == nil {
			return nil
		}

		records := make([]*models.PostedTweet, 0, len(batch))
		for _, tweet := range batch {
			documentID, ok := s.resolver.DocumentID(ctx, tweet.Text)
			if !ok {
				continue
			}
			records = append(records, recordForTweet(&tweet, documentID))
		}
		if len(records) == 0 {
			continue
		}

		if err := s.repo.CreateMany(ctx, records); err != nil {
			return err
		}
	}
}

// PublishReimbursement builds and posts the tweet, then records it. The
// publish and the record are not atomic: a failed write after a successful
// post leaves an unrecorded tweet behind.
func (s *twitterService) PublishReimbursement(ctx context.Context, r *models.Reimbursement) (*models.PostedTweet, error) {
	text, img, err := s.builder.Build(ctx, r)
	if err != nil {
		return nil, err
	}

	tweet, err := s.client.Publish(ctx, text, img.Bytes())
	if err != nil {
		return nil, fmt.Errorf("publish document %d: %w", r.DocumentID, err)
	}

	record := recordForTweet(tweet, r.DocumentID)
	if _, err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("record tweet %d: %w", tweet.ID, err)
	}

	if !img.Empty() && s.archive != nil {
		if err := s.archive.ArchiveImage(ctx, r.DocumentID, img.Bytes()); err != nil {
			slog.Warn(fmt.Sprintf("could not archive image for document %d: %v", r.DocumentID, err))
		}
	}
	return record, nil
}

func recordForTweet(tweet *twitter.Tweet, documentID int64) *models.PostedTweet {
	return &models.PostedTweet{
		Integration: models.IntegrationChamberOfDeputies,
		Target:      models.TargetTwitter,
		TweetID:     tweet.ID,
		ScreenName:  tweet.ScreenName,
		Text:        tweet.Text,
		DocumentID:  documentID,
		CreatedAt:   tweet.CreatedAt,
	}
}
