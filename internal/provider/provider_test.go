package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stefvuck/trailhead/internal/apperr"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSearcher struct {
	contentType domain.ContentType
	batches     [][]domain.Candidate
	errs        []error
	calls       int
}

func (s *scriptedSearcher) Name() string                    { return "scripted" }
func (s *scriptedSearcher) ContentType() domain.ContentType { return s.contentType }

func (s *scriptedSearcher) Search(_ context.Context, _ domain.SearchQuery, _ SearchOptions) ([]domain.Candidate, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if i < len(s.batches) {
		return s.batches[i], err
	}
	return nil, err
}

func video(id, url string) domain.Candidate {
	return domain.Candidate{ID: id, URL: url, ContentType: domain.ContentTypeVideo}
}

func queries(n int) []domain.SearchQuery {
	qs := make([]domain.SearchQuery, n)
	for i := range qs {
		qs[i] = domain.SearchQuery{Text: "q", ContentType: domain.ContentTypeVideo}
	}
	return qs
}

func TestSearchAll(t *testing.T) {
	t.Run("deduplicates by URL in first-seen order", func(t *testing.T) {
		s := &scriptedSearcher{
			batches: [][]domain.Candidate{
				{video("a", "https://x/a"), video("b", "https://x/b")},
				{video("b2", "https://x/b"), video("c", "https://x/c")},
			},
		}

		out := SearchAll(context.Background(), s, queries(2), SearchOptions{MaxResults: 10})
		require.Len(t, out, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{out[0].ID, out[1].ID, out[2].ID})
	})

	t.Run("stops at requested result count", func(t *testing.T) {
		s := &scriptedSearcher{
			batches: [][]domain.Candidate{
				{video("a", "https://x/a"), video("b", "https://x/b"), video("c", "https://x/c")},
				{video("d", "https://x/d")},
			},
		}

		out := SearchAll(context.Background(), s, queries(2), SearchOptions{MaxResults: 2})
		assert.Len(t, out, 2)
		assert.Equal(t, 1, s.calls, "should not issue further queries once satisfied")
	})

	t.Run("budget breach stops fan-out, keeps gathered", func(t *testing.T) {
		s := &scriptedSearcher{
			batches: [][]domain.Candidate{
				{video("a", "https://x/a")},
				nil,
				{video("z", "https://x/z")},
			},
			errs: []error{nil, apperr.NewBudget("scripted", time.Minute, 1, 1), nil},
		}

		out := SearchAll(context.Background(), s, queries(3), SearchOptions{MaxResults: 10})
		require.Len(t, out, 1)
		assert.Equal(t, "a", out[0].ID)
		assert.Equal(t, 2, s.calls)
	})

	t.Run("provider failure skips query, fan-out continues", func(t *testing.T) {
		s := &scriptedSearcher{
			batches: [][]domain.Candidate{
				nil,
				{video("b", "https://x/b")},
			},
			errs: []error{apperr.NewProvider("scripted", assert.AnError), nil},
		}

		out := SearchAll(context.Background(), s, queries(2), SearchOptions{MaxResults: 10})
		require.Len(t, out, 1)
		assert.Equal(t, "b", out[0].ID)
	})

	t.Run("cancelled context stops fan-out", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := &scriptedSearcher{batches: [][]domain.Candidate{{video("a", "https://x/a")}}}
		out := SearchAll(ctx, s, queries(3), SearchOptions{MaxResults: 10})
		assert.Empty(t, out)
	})
}

func TestSourceDomain(t *testing.T) {
	assert.Equal(t, "example.com", sourceDomain("https://www.example.com/post/1"))
	assert.Equal(t, "blog.example.com", sourceDomain("https://blog.example.com/a"))
	assert.Equal(t, "", sourceDomain("not a url"))
}
