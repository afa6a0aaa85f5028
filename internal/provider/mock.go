package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stefvuck/trailhead/internal/domain"
)

// MockSearcher produces deterministic candidates without network I/O. It
// backs the missing-credential and explicitly-disabled provider modes so
// the engine keeps its full shape in local and test environments.
type MockSearcher struct {
	contentType domain.ContentType
	now         func() time.Time
}

type MockOption func(*MockSearcher)

func WithMockClock(now func() time.Time) MockOption {
	return func(m *MockSearcher) {
		m.now = now
	}
}

func NewMockSearcher(ct domain.ContentType, opts ...MockOption) *MockSearcher {
	m := &MockSearcher{
		contentType: ct,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockSearcher) Name() string {
	return "mock-" + string(m.contentType)
}

func (m *MockSearcher) ContentType() domain.ContentType {
	return m.contentType
}

func (m *MockSearcher) Search(_ context.Context, query domain.SearchQuery, opts SearchOptions) ([]domain.Candidate, error) {
	n := opts.maxResults()
	if n > 5 {
		n = 5
	}
	slug := querySlug(query.Text)
	now := m.now()

	candidates := make([]domain.Candidate, 0, n)
	for i := 0; i < n; i++ {
		c := domain.Candidate{
			ID:          fmt.Sprintf("mock-%s-%s-%d", m.contentType, slug, i),
			Title:       fmt.Sprintf("%s, part %d", query.Text, i+1),
			Description: fmt.Sprintf("Practice-oriented %s content covering %s.", m.contentType, query.Text),
			ContentType: m.contentType,
			Difficulty:  query.SkillLevel,
			PublishedAt: now.AddDate(0, 0, -7*(i+1)),
		}
		if m.contentType == domain.ContentTypeVideo {
			c.URL = fmt.Sprintf("https://videos.example.com/%s/%d", slug, i)
			c.SourceDomain = "videos.example.com"
			c.DurationSeconds = 300 + 180*i
			c.Metrics = domain.Metrics{Views: int64(5000 * (i + 1)), Likes: int64(400 * (i + 1))}
		} else {
			c.URL = fmt.Sprintf("https://articles.example.com/%s/%d", slug, i)
			c.SourceDomain = "articles.example.com"
			c.WordCount = 800 + 400*i
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func querySlug(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, "-")
}
