package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/stefvuck/trailhead/internal/apperr"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/quota"
)

// YouTube Data API quota units: search.list costs 100, videos.list costs 1.
const (
	youtubeSearchCost = 100
	youtubeVideosCost = 1
)

// YouTubeClient searches the YouTube Data API v3 for video candidates.
// Without an API key it short-circuits to deterministic mock results so
// callers never observe a hard dependency on external availability.
type YouTubeClient struct {
	svc    *youtube.Service
	ledger *quota.Ledger
	mock   *MockSearcher
}

func NewYouTubeClient(ctx context.Context, apiKey string, ledger *quota.Ledger) (*YouTubeClient, error) {
	c := &YouTubeClient{ledger: ledger}

	if apiKey == "" {
		slog.Info("youtube api key missing, running in mock mode")
		c.mock = NewMockSearcher(domain.ContentTypeVideo)
		return c, nil
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	c.svc = svc
	return c, nil
}

func (c *YouTubeClient) Name() string {
	return "youtube"
}

func (c *YouTubeClient) ContentType() domain.ContentType {
	return domain.ContentTypeVideo
}

func (c *YouTubeClient) Search(ctx context.Context, query domain.SearchQuery, opts SearchOptions) ([]domain.Candidate, error) {
	if c.mock != nil {
		return c.mock.Search(ctx, query, opts)
	}

	if err := c.ledger.Check(youtubeSearchCost + youtubeVideosCost); err != nil {
		return nil, err
	}

	candidates, err := c.search(ctx, query, opts)
	if err != nil {
		return nil, apperr.NewProvider(c.Name(), err)
	}
	return candidates, nil
}

func (c *YouTubeClient) search(ctx context.Context, query domain.SearchQuery, opts SearchOptions) ([]domain.Candidate, error) {
	call := c.svc.Search.List([]string{"snippet"}).
		Q(query.Text).
		Type("video").
		Order("relevance").
		SafeSearch("strict").
		MaxResults(int64(opts.maxResults()))

	if opts.DurationBucket != "" {
		call = call.VideoDuration(opts.DurationBucket)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	c.ledger.Record(youtubeSearchCost)

	var ids []string
	snippets := make(map[string]*youtube.SearchResultSnippet, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		ids = append(ids, item.Id.VideoId)
		snippets[item.Id.VideoId] = item.Snippet
	}
	if len(ids) == 0 {
		return nil, nil
	}

	details, err := c.svc.Videos.List([]string{"contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	c.ledger.Record(youtubeVideosCost)

	stats := make(map[string]*youtube.Video, len(details.Items))
	for _, v := range details.Items {
		stats[v.Id] = v
	}

	candidates := make([]domain.Candidate, 0, len(ids))
	for _, id := range ids {
		candidates = append(candidates, normalizeVideo(id, snippets[id], stats[id], query.SkillLevel))
	}
	return candidates, nil
}

func normalizeVideo(id string, snippet *youtube.SearchResultSnippet, video *youtube.Video, level domain.Difficulty) domain.Candidate {
	c := domain.Candidate{
		ID:           id,
		URL:          "https://www.youtube.com/watch?v=" + id,
		SourceDomain: "youtube.com",
		ContentType:  domain.ContentTypeVideo,
		Difficulty:   level,
	}

	if snippet != nil {
		c.Title = snippet.Title
		c.Description = snippet.Description
		if t, err := time.Parse(time.RFC3339, snippet.PublishedAt); err == nil {
			c.PublishedAt = t
		}
	}

	if video != nil {
		if video.Statistics != nil {
			c.Metrics.Views = int64(video.Statistics.ViewCount)
			c.Metrics.Likes = int64(video.Statistics.LikeCount)
		}
		if video.ContentDetails != nil {
			c.DurationSeconds = parseISODuration(video.ContentDetails.Duration)
		}
	}

	return c
}

// parseISODuration converts an ISO 8601 duration like "PT1H2M30S" to
// seconds. Returns 0 when the value cannot be parsed; the scoring engine
// estimates a length instead of dropping the candidate.
func parseISODuration(iso string) int {
	rest, ok := strings.CutPrefix(iso, "PT")
	if !ok {
		rest, ok = strings.CutPrefix(iso, "P")
		if !ok {
			return 0
		}
	}

	total := 0
	num := 0
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int(r-'0')
		case r == 'H':
			total += num * 3600
			num = 0
		case r == 'M':
			total += num * 60
			num = 0
		case r == 'S':
			total += num
			num = 0
		case r == 'D':
			total += num * 86400
			num = 0
		case r == 'T':
			num = 0
		default:
			return 0
		}
	}
	return total
}
