package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	config "github.com/serenata/whistleblower/configs"
	"github.com/serenata/whistleblower/internal/models"
	"github.com/serenata/whistleblower/internal/profiles"
	"github.com/serenata/whistleblower/internal/twitter"
	"github.com/stretchr/testify/require"
)

// rewriteTransport sends every request to the test server regardless of the
// host in the URL, so t.co links can be resolved locally.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

type publishCall struct {
	text  string
	media []byte
}

type fakeClient struct {
	pages      [][]twitter.Tweet
	calls      []int64
	followed   []string
	followErrs map[string]error
	published  []publishCall
	publishRes *twitter.Tweet
	publishErr error
}

func (c *fakeClient) UserTimeline(ctx context.Context, screenName string, maxID int64) ([]twitter.Tweet, error) {
	c.calls = append(c.calls, maxID)
	idx := len(c.calls) - 1
	if idx >= len(c.pages) {
		return nil, nil
	}
	return c.pages[idx], nil
}

func (c *fakeClient) Follow(ctx context.Context, screenName string) error {
	c.followed = append(c.followed, screenName)
	return c.followErrs[screenName]
}

func (c *fakeClient) Publish(ctx context.Context, text string, media []byte) (*twitter.Tweet, error) {
	c.published = append(c.published, publishCall{text: text, media: media})
	if c.publishErr != nil {
		return nil, c.publishErr
	}
	if c.publishRes != nil {
		return c.publishRes, nil
	}
	return &twitter.Tweet{ID: 1, Text: text, ScreenName: "RosieDaSerenata", CreatedAt: time.Now()}, nil
}

type fakeRepo struct {
	ids       []int64
	listErr   error
	created   []*models.PostedTweet
	createErr error
	bulk      [][]*models.PostedTweet
}

func (r *fakeRepo) Create(ctx context.Context, pt *models.PostedTweet) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.created = append(r.created, pt)
	return int64(len(r.created)), nil
}

func (r *fakeRepo) CreateMany(ctx context.Context, pts []*models.PostedTweet) error {
	r.bulk = append(r.bulk, pts)
	return nil
}

func (r *fakeRepo) ListDocumentIDs(ctx context.Context, target string) ([]int64, error) {
	return r.ids, r.listErr
}

func (r *fakeRepo) ListByTarget(ctx context.Context, target string) ([]*models.PostedTweet, error) {
	return nil, nil
}

func (r *fakeRepo) GetByDocumentID(ctx context.Context, documentID int64) (*models.PostedTweet, error) {
	return nil, nil
}

type stubImages struct {
	result ImageResult
}

func (s stubImages) TweetImage(ctx context.Context, r *models.Reimbursement) ImageResult {
	return s.result
}

func testConfig() config.Config {
	return config.Config{
		TwitterProfile:      "RosieDaSerenata",
		JarbasURL:           "https://jarbas.serenata.ai/layers",
		ChamberDocumentsURL: "http://www.camara.gov.br/cota-parlamentar/documentos/publ",
	}
}

func testDataset(t *testing.T, rows string) *profiles.Dataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "social-accounts.csv")
	header := "congressperson_name,state,twitter_profile,secondary_twitter_profile\n"
	require.NoError(t, os.WriteFile(path, []byte(header+rows), 0o644))
	return profiles.NewDataset(path)
}

func newTestService(client twitter.Client, repo *fakeRepo, ds *profiles.Dataset, images ImageService, resolver *twitter.LinkResolver) TwitterService {
	cfg := testConfig()
	if images == nil {
		images = stubImages{result: NoImage()}
	}
	return NewTwitterService(cfg, client, repo, ds, NewTweetBuilder(cfg, images), resolver, nil)
}

func TestPostQueueFiltersPostedDocuments(t *testing.T) {
	repo := &fakeRepo{ids: []int64{2, 4}}
	s := newTestService(&fakeClient{}, repo, nil, nil, nil)

	input := []models.Reimbursement{
		{DocumentID: 1}, {DocumentID: 2}, {DocumentID: 3}, {DocumentID: 4}, {DocumentID: 5},
	}

	queue, err := s.PostQueue(context.Background(), input)
	require.NoError(t, err)

	var got []int64
	for _, r := range queue {
		got = append(got, r.DocumentID)
	}
	require.Equal(t, []int64{1, 3, 5}, got, "order must be preserved")
}

func TestPostQueueEmptyStore(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(&fakeClient{}, repo, nil, nil, nil)

	input := []models.Reimbursement{{DocumentID: 9}}
	queue, err := s.PostQueue(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, queue, 1)
}

func TestFollowCongresspeopleContinuesPastMissingProfiles(t *testing.T) {
	ds := testDataset(t, "A,SP,joe123,\nB,RJ,,maria2\nC,MG,ghost,\n")
	client := &fakeClient{followErrs: map[string]error{"ghost": twitter.ErrNotFound}}
	s := newTestService(client, &fakeRepo{}, ds, nil, nil)

	err := s.FollowCongresspeople(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"joe123", "ghost", "maria2"}, client.followed)
}

func TestProvisionRecords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/link1", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/reimbursements/101", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/link2", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/reimbursements/102", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	target, err := url.Parse(server.URL)
	require.NoError(t, err)
	resolver := twitter.NewLinkResolver(&http.Client{Transport: rewriteTransport{target: target}})

	now := time.Now()
	client := &fakeClient{pages: [][]twitter.Tweet{{
		{ID: 30, Text: "Gasto suspeito https://t.co/link1 #SerenataDeAmor", ScreenName: "RosieDaSerenata", CreatedAt: now},
		{ID: 29, Text: "unrelated housekeeping tweet", ScreenName: "RosieDaSerenata", CreatedAt: now},
		{ID: 28, Text: "Gasto suspeito https://t.co/link2 #SerenataDeAmor", ScreenName: "RosieDaSerenata", CreatedAt: now},
	}}}

	repo := &fakeRepo{}
	s := newTestService(client, repo, nil, nil, resolver)

	require.NoError(t, s.ProvisionRecords(context.Background()))
	require.Len(t, repo.bulk, 1)

	records := repo.bulk[0]
	require.Len(t, records, 2)
	require.Equal(t, int64(101), records[0].DocumentID)
	require.Equal(t, int64(102), records[1].DocumentID)
	require.Equal(t, models.TargetTwitter, records[0].Target)
	require.Equal(t, models.IntegrationChamberOfDeputies, records[0].Integration)
	require.Equal(t, int64(30), records[0].TweetID)
}

func TestPublishReimbursement(t *testing.T) {
	client := &fakeClient{publishRes: &twitter.Tweet{
		ID:         77,
		Text:       "posted text",
		ScreenName: "RosieDaSerenata",
		CreatedAt:  time.Date(2017, 6, 1, 12, 0, 0, 0, time.UTC),
	}}
	repo := &fakeRepo{}
	s := newTestService(client, repo, nil, nil, nil)

	r := &models.Reimbursement{DocumentID: 999, TwitterProfile: "joe123", State: "SP"}
	record, err := s.PublishReimbursement(context.Background(), r)
	require.NoError(t, err)

	require.Len(t, client.published, 1)
	require.Contains(t, client.published[0].text, "@joe123")
	require.Contains(t, client.published[0].text, "(SP)")
	require.Contains(t, client.published[0].text, "documentId/999")

	require.Len(t, repo.created, 1)
	require.Equal(t, int64(999), record.DocumentID)
	require.Equal(t, int64(77), record.TweetID)
	require.Equal(t, "RosieDaSerenata", record.ScreenName)
}

func TestPublishReimbursementNoProfile(t *testing.T) {
	client := &fakeClient{}
	s := newTestService(client, &fakeRepo{}, nil, nil, nil)

	_, err := s.PublishReimbursement(context.Background(), &models.Reimbursement{DocumentID: 1})
	require.ErrorIs(t, err, ErrNoProfile)
	require.Empty(t, client.published, "nothing goes out without a handle to mention")
}

func TestPublishReimbursementImageFailureDegradesToTextOnly(t *testing.T) {
	// document source is down; the tweet still goes out without media
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.ChamberDocumentsURL = server.URL
	images := NewImageService(cfg, server.Client(), failingRenderer{}, failingCropper{})

	client := &fakeClient{}
	repo := &fakeRepo{}
	s := NewTwitterService(cfg, client, repo, nil, NewTweetBuilder(cfg, images), nil, nil)

	r := &models.Reimbursement{DocumentID: 999, ApplicantID: 12, Year: 2017, TwitterProfile: "joe123", State: "SP"}
	_, err := s.PublishReimbursement(context.Background(), r)
	require.NoError(t, err)

	require.Len(t, client.published, 1)
	require.Nil(t, client.published[0].media)
	require.Len(t, repo.created, 1)
}

func TestPublishReimbursementRecordFailure(t *testing.T) {
	client := &fakeClient{}
	repo := &fakeRepo{createErr: errors.New("connection reset")}
	s := newTestService(client, repo, nil, nil, nil)

	r := &models.Reimbursement{DocumentID: 5, TwitterProfile: "joe123", State: "SP"}
	_, err := s.PublishReimbursement(context.Background(), r)
	require.Error(t, err)
	// the tweet went out anyway; the gap is reported, not repaired
	require.Len(t, client.published, 1)
}

func TestPublishReimbursementPublishFailure(t *testing.T) {
	client := &fakeClient{publishErr: fmt.Errorf("rate limited")}
	repo := &fakeRepo{}
	s := newTestService(client, repo, nil, nil, nil)

	r := &models.Reimbursement{DocumentID: 5, TwitterProfile: "joe123", State: "SP"}
	_, err := s.PublishReimbursement(context.Background(), r)
	require.Error(t, err)
	require.Empty(t, repo.created)
}
