package distribute

import (
	"sort"

	"github.com/stefvuck/trailhead/internal/apperr"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/scoring"
)

// Config fixes the per-milestone quota per content type.
type Config struct {
	VideosPerMilestone   int
	ArticlesPerMilestone int
}

func DefaultConfig() Config {
	return Config{VideosPerMilestone: 3, ArticlesPerMilestone: 1}
}

// Result is the full assignment set plus real/fallback counts for
// observability.
type Result struct {
	Milestones []domain.EnrichedMilestone
	Counts     domain.FallbackCounts
}

type Distributor struct {
	matcher *Matcher
	cfg     Config
}

func NewDistributor(authority *scoring.Registry, cfg Config) *Distributor {
	return &Distributor{
		matcher: NewMatcher(authority),
		cfg:     cfg,
	}
}

// Distribute assigns each milestone exactly its quota of videos and
// articles. Milestones are processed in roadmap order and selected
// candidates leave the shared pool immediately, so earlier milestones get
// first pick of the highest-relevance content; that ordering bias is
// intentional and observable. Exhausted pools are topped up with
// deterministic fallback placeholders, never with a candidate already
// assigned elsewhere.
//
// An empty milestone list or a negative quota is a caller contract
// violation and returns a validation error immediately.
func (d *Distributor) Distribute(milestones []domain.Milestone, videos, articles []domain.Candidate) (*Result, error) {
	if len(milestones) == 0 {
		return nil, apperr.NewValidation("milestone list must not be empty")
	}
	if d.cfg.VideosPerMilestone < 0 || d.cfg.ArticlesPerMilestone < 0 {
		return nil, apperr.NewValidation("per-milestone quota must not be negative")
	}

	videoPool := newPool(videos)
	articlePool := newPool(articles)

	res := &Result{Milestones: make([]domain.EnrichedMilestone, 0, len(milestones))}

	for idx := range milestones {
		ms := milestones[idx]
		em := domain.EnrichedMilestone{Milestone: ms}

		em.Videos = d.fillSlots(&ms, idx, domain.ContentTypeVideo, d.cfg.VideosPerMilestone, videoPool)
		em.Articles = d.fillSlots(&ms, idx, domain.ContentTypeArticle, d.cfg.ArticlesPerMilestone, articlePool)

		for _, r := range em.Videos {
			if r.Fallback {
				res.Counts.FallbackVideos++
			} else {
				res.Counts.RealVideos++
			}
		}
		for _, r := range em.Articles {
			if r.Fallback {
				res.Counts.FallbackArticles++
			} else {
				res.Counts.RealArticles++
			}
		}

		res.Milestones = append(res.Milestones, em)
	}

	return res, nil
}

// fillSlots selects the top-quota unassigned candidates by relevance score
// and synthesizes fallbacks for any remainder.
func (d *Distributor) fillSlots(ms *domain.Milestone, milestoneIdx int, ct domain.ContentType, quota int, p *pool) []domain.Resource {
	slots := make([]domain.Resource, 0, quota)

	for _, c := range p.take(d.matcher, ms, quota) {
		slots = append(slots, resourceFrom(c))
	}
	for len(slots) < quota {
		slots = append(slots, FallbackResource(ms, ct, milestoneIdx, len(slots)))
	}

	return slots
}

func resourceFrom(c domain.Candidate) domain.Resource {
	return domain.Resource{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		URL:         c.URL,
		ContentType: c.ContentType,
		Quality:     c.QualityScore,
		Fallback:    false,
	}
}

// pool holds the shared unassigned candidates of one content type.
type pool struct {
	candidates []domain.Candidate
}

func newPool(candidates []domain.Candidate) *pool {
	p := &pool{candidates: make([]domain.Candidate, len(candidates))}
	copy(p.candidates, candidates)
	return p
}

// take removes and returns up to n candidates with the highest relevance
// to the milestone. Score ties keep pool order, which is quality order, so
// selection is deterministic.
func (p *pool) take(m *Matcher, ms *domain.Milestone, n int) []domain.Candidate {
	if n <= 0 || len(p.candidates) == 0 {
		return nil
	}

	idxs := make([]int, len(p.candidates))
	scores := make([]float64, len(p.candidates))
	for i := range p.candidates {
		idxs[i] = i
		scores[i] = m.Score(&p.candidates[i], ms)
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return scores[idxs[a]] > scores[idxs[b]]
	})

	if n > len(idxs) {
		n = len(idxs)
	}
	chosen := idxs[:n]

	picked := make([]domain.Candidate, 0, n)
	taken := make(map[int]struct{}, n)
	for _, i := range chosen {
		taken[i] = struct{}{}
	}
	// Preserve relevance order in the returned slice.
	for _, i := range chosen {
		picked = append(picked, p.candidates[i])
	}

	remaining := p.candidates[:0]
	for i := range p.candidates {
		if _, ok := taken[i]; !ok {
			remaining = append(remaining, p.candidates[i])
		}
	}
	p.candidates = remaining

	return picked
}
