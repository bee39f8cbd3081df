package service

import (
	"context"
	"fmt"
	"strings"

	config "github.com/serenata/whistleblower/configs"
	"github.com/serenata/whistleblower/internal/models"
)

// TweetBuilder derives the tweet text and image for one reimbursement.
type TweetBuilder struct {
	cfg    config.Config
	images ImageService
}

func NewTweetBuilder(cfg config.Config, images ImageService) *TweetBuilder {
	return &TweetBuilder{cfg: cfg, images: images}
}

// Build returns the tweet text and image for the reimbursement. Fails with
// ErrNoProfile when there is no handle to mention; image trouble never fails
// the build, the result just carries NoImage.
func (b *TweetBuilder) Build(ctx context.Context, r *models.Reimbursement) (string, ImageResult, error) {
	if r.TwitterProfile == "" {
		return "", NoImage(), ErrNoProfile
	}
	return b.tweetText(r), b.images.TweetImage(ctx, r), nil
}

func (b *TweetBuilder) tweetText(r *models.Reimbursement) string {
	link := fmt.Sprintf("%s/#/documentId/%d", strings.TrimSuffix(b.cfg.JarbasURL, "/"), r.DocumentID)
	return fmt.Sprintf(
		"🚨Gasto suspeito de Dep. @%s (%s). Você pode me ajudar a verificar? %s #SerenataDeAmor na @CamaraDeputados",
		r.TwitterProfile,
		r.State,
		link,
	)
}
