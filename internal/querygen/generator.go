// Package querygen turns a topic and optional milestone context into
// disambiguated search phrases per content type.
package querygen

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/stefvuck/trailhead/internal/apperr"
	"github.com/stefvuck/trailhead/internal/domain"
)

// TextModel is the narrow contract consumed from the generative-model
// collaborator. It may fail; the generator always recovers via the
// deterministic fallback.
type TextModel interface {
	GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// MilestoneContext biases phrase generation toward one roadmap step.
type MilestoneContext struct {
	Title       string
	Description string
	Difficulty  domain.Difficulty
}

type Generator struct {
	model TextModel
}

type GeneratorOption func(*Generator)

// WithModel enables the primary generation path. Without a model the
// generator runs fallback-only.
func WithModel(model TextModel) GeneratorOption {
	return func(g *Generator) {
		g.model = model
	}
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces up to maxQueries ordered phrases per content type plus
// a topic classification. It never returns an error: any failure of the
// collaborator resolves to the deterministic fallback plan, tagged
// degraded.
func (g *Generator) Generate(ctx context.Context, topic string, level domain.Difficulty, msCtx *MilestoneContext, maxQueries int) *domain.QueryPlan {
	if maxQueries <= 0 {
		maxQueries = DefaultMaxQueries
	}

	if g.model != nil {
		plan, err := g.generatePrimary(ctx, topic, level, msCtx, maxQueries)
		if err == nil {
			return plan
		}
		slog.Warn("query generation degraded to fallback", "topic", topic, "error", err)
	}

	return FallbackPlan(topic, level, msCtx, maxQueries)
}

type modelReply struct {
	VideoQueries   []string `json:"video_queries"`
	ArticleQueries []string `json:"article_queries"`
	Classification struct {
		Domain     string `json:"domain"`
		Complexity string `json:"complexity"`
	} `json:"classification"`
	Reasoning string `json:"reasoning"`
}

func (g *Generator) generatePrimary(ctx context.Context, topic string, level domain.Difficulty, msCtx *MilestoneContext, maxQueries int) (*domain.QueryPlan, error) {
	raw, err := g.model.GenerateWithSystem(ctx, systemPrompt, userPrompt(topic, level, msCtx, maxQueries))
	if err != nil {
		return nil, apperr.NewCollaborator(err)
	}

	var reply modelReply
	if err := json.Unmarshal([]byte(stripFences(raw)), &reply); err != nil {
		return nil, apperr.NewCollaborator(err)
	}
	if len(reply.VideoQueries) == 0 && len(reply.ArticleQueries) == 0 {
		return nil, apperr.NewCollaborator(errEmptyReply)
	}

	plan := &domain.QueryPlan{
		Classification: domain.Classification{
			Domain:     reply.Classification.Domain,
			Complexity: reply.Classification.Complexity,
		},
		Reasoning: reply.Reasoning,
	}
	plan.VideoQueries = toQueries(reply.VideoQueries, domain.ContentTypeVideo, level, maxQueries)
	plan.ArticleQueries = toQueries(reply.ArticleQueries, domain.ContentTypeArticle, level, maxQueries)

	return plan, nil
}

func toQueries(phrases []string, ct domain.ContentType, level domain.Difficulty, max int) []domain.SearchQuery {
	var out []domain.SearchQuery
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, domain.SearchQuery{Text: p, ContentType: ct, SkillLevel: level})
		if len(out) == max {
			break
		}
	}
	return out
}

// stripFences removes a markdown code fence the model may wrap its JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
