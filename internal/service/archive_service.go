package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
	config "github.com/serenata/whistleblower/configs"
)

// ArchiveService keeps a copy of every published receipt image in object
// storage, so a tweet can be audited after the platform drops the media.
type ArchiveService struct {
	config config.Config
}

func NewArchiveService(cfg config.Config) *ArchiveService {
	return &ArchiveService{config: cfg}
}

func (a *ArchiveService) ArchiveImage(ctx context.Context, documentID int64, data []byte) error {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		kind = filetype.GetType("png")
	}

	suffix, err := gonanoid.New(8)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	key := fmt.Sprintf("tweets/%d-%s.%s", documentID, suffix, kind.Extension)

	client, err := r2Client(ctx, a.config)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(a.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(kind.MIME.Value),
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
