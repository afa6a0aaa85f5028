// Package scoring assigns every candidate a bounded quality score and
// decides which candidates survive filtering for a given search.
package scoring

import (
	"sort"
	"strings"
	"time"

	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/textutil"
	"github.com/stefvuck/trailhead/pkg/utils"
)

// weights combine the sub-scores into the final quality score. Video is
// engagement-heavy, article is authority-heavy. Articles carry a zero
// engagement weight since no provider reports article engagement metrics.
var (
	videoWeights   = weights{relevance: 0.35, engagement: 0.25, freshness: 0.20, authority: 0.10, depth: 0.10}
	articleWeights = weights{authority: 0.35, relevance: 0.35, freshness: 0.15, depth: 0.15}
)

type weights struct {
	authority  float64
	engagement float64
	freshness  float64
	relevance  float64
	depth      float64
}

// Vocabulary is the query-side term set candidates are scored against.
type Vocabulary struct {
	terms []string
}

// NewVocabulary collects significant terms from the search queries and the
// skill level.
func NewVocabulary(queries []domain.SearchQuery, level domain.Difficulty) Vocabulary {
	var b strings.Builder
	for _, q := range queries {
		b.WriteString(q.Text)
		b.WriteString(" ")
	}
	b.WriteString(string(level))
	return Vocabulary{terms: textutil.SignificantTerms(b.String())}
}

type Engine struct {
	authority *Registry
	now       func() time.Time
}

type EngineOption func(*Engine)

func WithAuthority(r *Registry) EngineOption {
	return func(e *Engine) {
		e.authority = r
	}
}

// WithEngineClock injects the time source, used by tests.
func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		authority: NewRegistry(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Authority() *Registry {
	return e.authority
}

// ScoreAll scores every candidate in place and returns the slice sorted by
// quality descending, ties broken by authority then recency.
func (e *Engine) ScoreAll(candidates []domain.Candidate, vocab Vocabulary) []domain.Candidate {
	for i := range candidates {
		e.Score(&candidates[i], vocab)
	}
	SortByQuality(candidates)
	return candidates
}

// Score computes the candidate's sub-scores and final quality score. All
// sub-scores are bounded to [0,100] before weighting; the final score is an
// integer in [0,100].
func (e *Engine) Score(c *domain.Candidate, vocab Vocabulary) {
	EstimateLength(c)

	q := domain.QualityBreakdown{
		Authority:  e.authority.Score(c.SourceDomain),
		Engagement: engagementScore(c),
		Freshness:  freshnessScore(c, e.now()),
		Relevance:  relevanceScore(c, vocab),
		Depth:      depthScore(c),
		Bonus:      bonusScore(c),
	}

	var w weights
	if c.ContentType == domain.ContentTypeVideo {
		w = videoWeights
	} else {
		w = articleWeights
	}

	raw := q.Authority*w.authority +
		q.Engagement*w.engagement +
		q.Freshness*w.freshness +
		q.Relevance*w.relevance +
		q.Depth*w.depth +
		q.Bonus

	c.Quality = q
	c.QualityScore = int(utils.Clamp(utils.RoundDecimal(raw, 0), 0, 100))
}

// freshnessScore decays with publish age: full score under 30 days,
// stepping down through age bands to a floor. An unparseable publish date
// yields a neutral score rather than discarding the candidate.
func freshnessScore(c *domain.Candidate, now time.Time) float64 {
	age := c.AgeDays(now)
	switch {
	case age < 0:
		return 50
	case age <= 30:
		return 100
	case age <= 90:
		return 85
	case age <= 180:
		return 70
	case age <= 365:
		return 55
	case age <= 730:
		return 35
	default:
		return 20
	}
}

// relevanceScore measures keyword overlap between the candidate's text and
// the query vocabulary.
func relevanceScore(c *domain.Candidate, vocab Vocabulary) float64 {
	candTerms := textutil.SignificantTerms(c.Title + " " + c.Description)
	return utils.Clamp(textutil.Overlap(vocab.terms, candTerms)*100, 0, 100)
}

// engagementScore maps the provider like ratio onto [0,100] for videos.
// Candidates without engagement metrics get a neutral score; articles never
// carry metrics so their neutral score is recorded but unweighted.
func engagementScore(c *domain.Candidate) float64 {
	if c.ContentType == domain.ContentTypeVideo && c.Metrics.Views > 0 {
		ratio := float64(c.Metrics.Likes) / float64(c.Metrics.Views)
		// A 4% like ratio is excellent on most platforms.
		return utils.Clamp(ratio/0.04*100, 0, 100)
	}
	return 50.0
}

var depthKeywords = []string{"tutorial", "guide", "documentation", "course", "walkthrough", "handbook"}

var workedExampleKeywords = []string{"example", "examples", "step by step", "step-by-step", "hands-on", "project", "exercise"}

// depthScore rewards tutorial/guide/documentation content and detected
// worked examples.
func depthScore(c *domain.Candidate) float64 {
	text := strings.ToLower(c.Title + " " + c.Description)
	score := 40.0
	for _, kw := range depthKeywords {
		if strings.Contains(text, kw) {
			score += 30
			break
		}
	}
	for _, kw := range workedExampleKeywords {
		if strings.Contains(text, kw) {
			score += 30
			break
		}
	}
	return utils.Clamp(score, 0, 100)
}

// bonusScore is a small post-weight bonus for content that names the
// candidate's own skill tier.
func bonusScore(c *domain.Candidate) float64 {
	if c.Difficulty == "" {
		return 0
	}
	text := strings.ToLower(c.Title + " " + c.Description)
	if strings.Contains(text, string(c.Difficulty)) {
		return 5
	}
	return 0
}

// SortByQuality orders candidates by quality score descending, breaking
// ties by authority, then by recency.
func SortByQuality(candidates []domain.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.QualityScore != b.QualityScore {
			return a.QualityScore > b.QualityScore
		}
		if a.Quality.Authority != b.Quality.Authority {
			return a.Quality.Authority > b.Quality.Authority
		}
		return a.PublishedAt.After(b.PublishedAt)
	})
}
