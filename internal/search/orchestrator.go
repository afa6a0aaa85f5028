// Package search is the engine entry point: it runs query generation, the
// concurrent provider fan-out, quality scoring and milestone distribution,
// and returns an enriched roadmap plus sourcing metadata.
package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stefvuck/trailhead/internal/apperr"
	"github.com/stefvuck/trailhead/internal/distribute"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/provider"
	"github.com/stefvuck/trailhead/internal/querygen"
	"github.com/stefvuck/trailhead/internal/scoring"
)

type Config struct {
	// MaxQueriesPerType caps the phrases generated per content type.
	MaxQueriesPerType int
	// ResultsPerType is the candidate pool size requested from each
	// provider fan-out.
	ResultsPerType int
	Quota          distribute.Config
}

func DefaultConfig() Config {
	return Config{
		MaxQueriesPerType: 3,
		ResultsPerType:    15,
		Quota:             distribute.DefaultConfig(),
	}
}

// Request is one roadmap-enrichment invocation.
type Request struct {
	Topic      string
	SkillLevel domain.Difficulty
	Milestones []domain.Milestone
}

type Orchestrator struct {
	queryGen *querygen.Generator
	videos   provider.Searcher
	articles provider.Searcher
	engine   *scoring.Engine
	cfg      Config
	now      func() time.Time
}

type OrchestratorOption func(*Orchestrator)

// WithClock injects the time source, used by tests.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		o.now = now
	}
}

func WithScoringEngine(e *scoring.Engine) OrchestratorOption {
	return func(o *Orchestrator) {
		o.engine = e
	}
}

func NewOrchestrator(queryGen *querygen.Generator, videos, articles provider.Searcher, cfg Config, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		queryGen: queryGen,
		videos:   videos,
		articles: articles,
		engine:   scoring.NewEngine(),
		cfg:      cfg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Enrich runs the full pipeline. The video and article searches run as
// concurrent branches and join before the purely CPU-bound scoring and
// distribution phases; a branch that times out or exhausts its budget
// yields an empty pool and the distributor fills the gap with fallbacks.
// The returned roadmap always has the complete milestone/slot structure;
// degraded sourcing is visible only in the metadata.
func (o *Orchestrator) Enrich(ctx context.Context, req Request) (*domain.EnrichedRoadmap, error) {
	if req.Topic == "" {
		return nil, apperr.NewValidation("topic must not be empty")
	}
	if len(req.Milestones) == 0 {
		return nil, apperr.NewValidation("milestone list must not be empty")
	}

	plan := o.queryGen.Generate(ctx, req.Topic, req.SkillLevel, nil, o.cfg.MaxQueriesPerType)

	var rawVideos, rawArticles []domain.Candidate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rawVideos = provider.SearchAll(gctx, o.videos, plan.VideoQueries, provider.SearchOptions{
			MaxResults:     o.cfg.ResultsPerType,
			SkillLevel:     req.SkillLevel,
			DurationBucket: durationBucket(req.SkillLevel),
		})
		return nil
	})
	g.Go(func() error {
		rawArticles = provider.SearchAll(gctx, o.articles, plan.ArticleQueries, provider.SearchOptions{
			MaxResults: o.cfg.ResultsPerType,
			SkillLevel: req.SkillLevel,
		})
		return nil
	})
	// Branches never fail the request; the group is only a join point.
	_ = g.Wait()

	videos := o.scoreAndFilter(rawVideos, plan.VideoQueries, req, domain.ContentTypeVideo, o.cfg.Quota.VideosPerMilestone)
	articles := o.scoreAndFilter(rawArticles, plan.ArticleQueries, req, domain.ContentTypeArticle, o.cfg.Quota.ArticlesPerMilestone)

	distributor := distribute.NewDistributor(o.engine.Authority(), o.cfg.Quota)
	result, err := distributor.Distribute(req.Milestones, videos, articles)
	if err != nil {
		return nil, err
	}

	slog.Info("roadmap enriched",
		"topic", req.Topic,
		"milestones", len(req.Milestones),
		"rawVideos", len(rawVideos),
		"rawArticles", len(rawArticles),
		"fallbackVideos", result.Counts.FallbackVideos,
		"fallbackArticles", result.Counts.FallbackArticles,
		"degradedQueries", plan.Degraded,
	)

	return &domain.EnrichedRoadmap{
		ID:         uuid.New(),
		Topic:      req.Topic,
		SkillLevel: req.SkillLevel,
		Milestones: result.Milestones,
		Metadata: domain.SearchMetadata{
			SearchQueries:  append(append([]domain.SearchQuery{}, plan.VideoQueries...), plan.ArticleQueries...),
			Classification: plan.Classification,
			Degraded:       plan.Degraded,
			APIResults: domain.APIResults{
				Videos:   len(rawVideos),
				Articles: len(rawArticles),
			},
			Fallbacks: result.Counts,
		},
		CreatedAt: o.now(),
	}, nil
}

func (o *Orchestrator) scoreAndFilter(raw []domain.Candidate, queries []domain.SearchQuery, req Request, ct domain.ContentType, quota int) []domain.Candidate {
	if len(raw) == 0 {
		return nil
	}

	vocab := scoring.NewVocabulary(queries, req.SkillLevel)
	scored := o.engine.ScoreAll(raw, vocab)

	target := len(req.Milestones) * quota
	survivors, applied, steps := o.engine.FilterAdaptive(scored, scoring.DefaultThresholds(ct), target)
	if steps > 0 {
		slog.Debug("thresholds relaxed",
			"contentType", ct,
			"steps", steps,
			"minQuality", applied.MinQuality,
			"maxAgeDays", applied.MaxAgeDays,
			"survivors", len(survivors),
		)
	}
	return survivors
}

// durationBucket maps a skill level to the provider's preferred video
// length bucket.
func durationBucket(level domain.Difficulty) string {
	if level == domain.DifficultyAdvanced {
		return "long"
	}
	return "medium"
}
