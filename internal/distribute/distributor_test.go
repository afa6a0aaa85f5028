package distribute

import (
	"fmt"
	"testing"

	"github.com/stefvuck/trailhead/internal/apperr"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDistributor(cfg Config) *Distributor {
	return NewDistributor(scoring.NewRegistry(), cfg)
}

func milestones(n int) []domain.Milestone {
	out := make([]domain.Milestone, n)
	tiers := []domain.Difficulty{domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced}
	for i := range out {
		out[i] = domain.Milestone{
			ID:         fmt.Sprintf("m%d", i),
			Title:      fmt.Sprintf("Step %d", i+1),
			Difficulty: tiers[i%len(tiers)],
			Order:      i,
		}
	}
	return out
}

func videoCandidates(n int) []domain.Candidate {
	out := make([]domain.Candidate, n)
	for i := range out {
		out[i] = domain.Candidate{
			ID:              fmt.Sprintf("v%d", i),
			Title:           fmt.Sprintf("Video %d", i),
			URL:             fmt.Sprintf("https://x/v%d", i),
			ContentType:     domain.ContentTypeVideo,
			QualityScore:    90 - i,
			DurationSeconds: 600,
		}
	}
	return out
}

func TestDistributeCompleteness(t *testing.T) {
	d := testDistributor(Config{VideosPerMilestone: 3, ArticlesPerMilestone: 1})
	ms := milestones(4)

	// Fewer candidates than slots: fallbacks must fill the rest.
	res, err := d.Distribute(ms, videoCandidates(5), nil)
	require.NoError(t, err)
	require.Len(t, res.Milestones, 4)

	for _, em := range res.Milestones {
		assert.Len(t, em.Videos, 3)
		assert.Len(t, em.Articles, 1)
	}

	assert.Equal(t, 5, res.Counts.RealVideos)
	assert.Equal(t, 7, res.Counts.FallbackVideos)
	assert.Equal(t, 0, res.Counts.RealArticles)
	assert.Equal(t, 4, res.Counts.FallbackArticles)
}

func TestDistributeNoDoubleAssignment(t *testing.T) {
	d := testDistributor(Config{VideosPerMilestone: 3, ArticlesPerMilestone: 0})
	res, err := d.Distribute(milestones(3), videoCandidates(9), nil)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for _, em := range res.Milestones {
		for _, r := range em.Videos {
			if r.Fallback {
				continue
			}
			_, dup := seen[r.ID]
			assert.False(t, dup, "candidate %s assigned twice", r.ID)
			seen[r.ID] = struct{}{}
		}
	}
	assert.Len(t, seen, 9)
}

// Earlier milestones are processed first and take the best-matching
// candidates before later milestones see the pool.
func TestDistributeEarlierMilestoneWinsTies(t *testing.T) {
	d := testDistributor(Config{VideosPerMilestone: 1, ArticlesPerMilestone: 0})

	// Both milestones match the single strong candidate equally.
	ms := []domain.Milestone{
		{ID: "m0", Title: "goroutines basics", Difficulty: domain.DifficultyBeginner, Order: 0},
		{ID: "m1", Title: "goroutines basics", Difficulty: domain.DifficultyBeginner, Order: 1},
	}
	cands := []domain.Candidate{
		{ID: "best", Title: "goroutines basics explained", URL: "https://x/1", ContentType: domain.ContentTypeVideo, QualityScore: 95, DurationSeconds: 600, Difficulty: domain.DifficultyBeginner},
		{ID: "weaker", Title: "unrelated", URL: "https://x/2", ContentType: domain.ContentTypeVideo, QualityScore: 20, DurationSeconds: 600},
	}

	res, err := d.Distribute(ms, cands, nil)
	require.NoError(t, err)
	assert.Equal(t, "best", res.Milestones[0].Videos[0].ID)
	assert.Equal(t, "weaker", res.Milestones[1].Videos[0].ID)
}

func TestDistributeFallbackDeterminism(t *testing.T) {
	ms := domain.Milestone{ID: "m2", Title: "Advanced drills", Difficulty: domain.DifficultyAdvanced}

	a := FallbackResource(&ms, domain.ContentTypeVideo, 2, 1)
	b := FallbackResource(&ms, domain.ContentTypeVideo, 2, 1)
	assert.Equal(t, a, b)

	assert.Equal(t, "fallback-video-2-1", a.ID)
	assert.Equal(t, "Advanced video resource 2", a.Title)
	assert.Equal(t, domain.FallbackURL+"video/2/1", a.URL)
	assert.Equal(t, FallbackQuality, a.Quality)
	assert.True(t, a.Fallback)

	other := FallbackResource(&ms, domain.ContentTypeVideo, 2, 0)
	assert.NotEqual(t, a.ID, other.ID, "slot index differentiates placeholders")
}

func TestDistributeDifficultyCompatibility(t *testing.T) {
	d := testDistributor(Config{VideosPerMilestone: 1, ArticlesPerMilestone: 0})

	ms := []domain.Milestone{{ID: "m0", Title: "practice", Difficulty: domain.DifficultyBeginner, Order: 0}}
	cands := []domain.Candidate{
		{ID: "advanced", Title: "practice", URL: "https://x/a", ContentType: domain.ContentTypeVideo, Difficulty: domain.DifficultyAdvanced, QualityScore: 80, DurationSeconds: 600},
		{ID: "matching", Title: "practice", URL: "https://x/b", ContentType: domain.ContentTypeVideo, Difficulty: domain.DifficultyBeginner, QualityScore: 80, DurationSeconds: 600},
	}

	res, err := d.Distribute(ms, cands, nil)
	require.NoError(t, err)
	assert.Equal(t, "matching", res.Milestones[0].Videos[0].ID)
}

func TestDistributeInvariantViolations(t *testing.T) {
	t.Run("empty milestones", func(t *testing.T) {
		d := testDistributor(DefaultConfig())
		_, err := d.Distribute(nil, nil, nil)
		require.Error(t, err)
		var ve *apperr.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("negative quota", func(t *testing.T) {
		d := testDistributor(Config{VideosPerMilestone: -1})
		_, err := d.Distribute(milestones(1), nil, nil)
		require.Error(t, err)
		var ve *apperr.ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestMatcherScoreBounds(t *testing.T) {
	m := NewMatcher(scoring.NewRegistry())
	ms := domain.Milestone{Title: "Learn goroutines and channels", Description: "concurrency basics", Difficulty: domain.DifficultyBeginner}

	perfect := domain.Candidate{
		Title:           "Learn goroutines and channels concurrency basics",
		SourceDomain:    "go.dev",
		ContentType:     domain.ContentTypeVideo,
		Difficulty:      domain.DifficultyBeginner,
		QualityScore:    100,
		DurationSeconds: 600,
	}
	score := m.Score(&perfect, &ms)
	assert.LessOrEqual(t, score, maxMatchScore)
	assert.Greater(t, score, maxMatchScore*0.9)

	empty := domain.Candidate{ContentType: domain.ContentTypeArticle}
	assert.GreaterOrEqual(t, m.Score(&empty, &ms), 0.0)
}

func TestLengthFit(t *testing.T) {
	t.Run("shorter preferred for beginner", func(t *testing.T) {
		short := domain.Candidate{ContentType: domain.ContentTypeVideo, DurationSeconds: 600}
		long := domain.Candidate{ContentType: domain.ContentTypeVideo, DurationSeconds: 5400}
		assert.Greater(t, lengthFit(&short, domain.DifficultyBeginner), lengthFit(&long, domain.DifficultyBeginner))
	})

	t.Run("longer tolerated for advanced", func(t *testing.T) {
		long := domain.Candidate{ContentType: domain.ContentTypeVideo, DurationSeconds: 5400}
		assert.Equal(t, 1.0, lengthFit(&long, domain.DifficultyAdvanced))
	})
}
