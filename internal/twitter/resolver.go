package twitter

import (
	"context"
	"log/slog"
	"net/http"
	"path"
	"regexp"
	"strconv"
)

// Tweets link to a reimbursement through the platform's link shortener. The
// document ID only shows up after following the redirect chain.
var shortenedLinkPattern = regexp.MustCompile(`(https://t\.co/\S+)\s`)

// LinkResolver recovers a document ID from a tweet's shortened link.
type LinkResolver struct {
	httpClient *http.Client
}

func NewLinkResolver(httpClient *http.Client) *LinkResolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &LinkResolver{httpClient: httpClient}
}

// DocumentID finds the shortened link in text, resolves it with a HEAD
// request and parses the final path segment as the document ID. Returns
// false when the text has no link or the resolution fails.
func (r *LinkResolver) DocumentID(ctx context.Context, text string) (int64, bool) {
	matches := shortenedLinkPattern.FindStringSubmatch(text)
	if matches == nil {
		return 0, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, matches[1], nil)
	if err != nil {
		slog.Info(err.Error())
		return 0, false
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return 0, false
	}
	defer resp.Body.Close()

	id, err := strconv.ParseInt(path.Base(resp.Request.URL.Path), 10, 64)
	if err != nil {
		slog.Info(err.Error())
		return 0, false
	}
	return id, true
}
