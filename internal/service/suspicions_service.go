package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gocarina/gocsv"
	config "github.com/serenata/whistleblower/configs"
	"github.com/serenata/whistleblower/internal/models"
)

// SuspicionsService fetches the flagged reimbursements dataset from object
// storage. The dataset is produced upstream; this service only reads it.
type SuspicionsService interface {
	FlaggedReimbursements(ctx context.Context) ([]models.Reimbursement, error)
}

type suspicionsService struct {
	cfg config.Config
}

func NewSuspicionsService(cfg config.Config) SuspicionsService {
	return &suspicionsService{cfg: cfg}
}

func (s *suspicionsService) FlaggedReimbursements(ctx context.Context) ([]models.Reimbursement, error) {
	client, err := r2Client(ctx, s.cfg)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.SuspicionsBucket),
		Key:    aws.String(s.cfg.SuspicionsKey),
	})
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("fetch suspicions dataset: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}

	var reimbursements []models.Reimbursement
	if err := gocsv.UnmarshalBytes(body, &reimbursements); err != nil {
		return nil, fmt.Errorf("parse suspicions dataset: %w", err)
	}
	return reimbursements, nil
}
