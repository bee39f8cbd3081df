package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	config "github.com/serenata/whistleblower/configs"
	"github.com/serenata/whistleblower/internal/models"
)

// ImageResult is either the cropped receipt image or nothing. Publishing
// never aborts over image trouble, so the failure mode is part of the type
// instead of an error return.
type ImageResult struct {
	data []byte
}

func Image(data []byte) ImageResult {
	return ImageResult{data: data}
}

func NoImage() ImageResult {
	return ImageResult{}
}

func (r ImageResult) Bytes() []byte {
	return r.data
}

func (r ImageResult) Empty() bool {
	return len(r.data) == 0
}

// Cropper trims a rendered receipt down to its content. The geometry lives
// in a separate collaborator.
type Cropper interface {
	Crop(src image.Image) (image.Image, error)
}

type ImageService interface {
	TweetImage(ctx context.Context, r *models.Reimbursement) ImageResult
}

type imageService struct {
	cfg        config.Config
	httpClient *http.Client
	renderer   DocumentRenderer
	cropper    Cropper
}

func NewImageService(cfg config.Config, httpClient *http.Client, renderer DocumentRenderer, cropper Cropper) ImageService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &imageService{
		cfg:        cfg,
		httpClient: httpClient,
		renderer:   renderer,
		cropper:    cropper,
	}
}

// TweetImage downloads the reimbursement receipt, renders its first page,
// crops it and returns the PNG bytes. Every failure along the way degrades
// to NoImage so the tweet still goes out text-only.
func (s *imageService) TweetImage(ctx context.Context, r *models.Reimbursement) ImageResult {
	data, err := s.croppedReceipt(ctx, r)
	if err != nil {
		slog.Warn(fmt.Sprintf("no image for document %d: %v", r.DocumentID, err))
		return NoImage()
	}
	return Image(data)
}

func (s *imageService) croppedReceipt(ctx context.Context, r *models.Reimbursement) ([]byte, error) {
	document, err := s.fetchDocument(ctx, r)
	if err != nil {
		return nil, err
	}

	rendered, err := s.renderer.FirstPage(document)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	cropped, err := s.cropper.Crop(rendered)
	if err != nil {
		return nil, fmt.Errorf("crop document: %w", err)
	}

	temp, err := os.CreateTemp("", "reimbursement-*.png")
	if err != nil {
		return nil, err
	}
	defer os.Remove(temp.Name())
	defer temp.Close()

	if err := png.Encode(temp, cropped); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return os.ReadFile(temp.Name())
}

func (s *imageService) fetchDocument(ctx context.Context, r *models.Reimbursement) ([]byte, error) {
	url := s.documentURL(r)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code fetching %s: %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// empty body means a broken document link, not a valid PDF
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("empty document at %s", url)
	}
	return body, nil
}

func (s *imageService) documentURL(r *models.Reimbursement) string {
	base := strings.TrimSuffix(s.cfg.ChamberDocumentsURL, "/")
	return fmt.Sprintf("%s/%d/%d/%d.pdf", base, r.ApplicantID, r.Year, r.DocumentID)
}
