// Package provider wraps the external content search APIs and normalizes
// their results into domain.Candidate at the client boundary.
package provider

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/stefvuck/trailhead/internal/apperr"
	"github.com/stefvuck/trailhead/internal/domain"
)

// SearchOptions tunes one provider call.
type SearchOptions struct {
	MaxResults int
	SkillLevel domain.Difficulty

	// DurationBucket is the preferred video length bucket: "short",
	// "medium" or "long". Video-only.
	DurationBucket string
}

func (o SearchOptions) maxResults() int {
	if o.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return o.MaxResults
}

const DefaultMaxResults = 10

// Searcher is the contract every provider client satisfies. Search returns
// one of two typed errors: apperr.BudgetError, raised before any network
// I/O when a quota ceiling would be breached, or apperr.ProviderError
// wrapping an upstream failure. SearchAll recovers provider errors per
// query; only a budget breach stops the fan-out.
type Searcher interface {
	Name() string
	ContentType() domain.ContentType
	Search(ctx context.Context, query domain.SearchQuery, opts SearchOptions) ([]domain.Candidate, error)
}

// SearchAll fans out over queries sequentially in priority order,
// deduplicating candidates by URL in first-seen order and stopping once
// maxResults candidates are gathered. A budget breach stops the fan-out
// and returns whatever was already gathered; per-query provider failures
// have already been swallowed by the client.
func SearchAll(ctx context.Context, s Searcher, queries []domain.SearchQuery, opts SearchOptions) []domain.Candidate {
	target := opts.maxResults()
	seen := make(map[string]struct{})
	var out []domain.Candidate

	for _, q := range queries {
		if len(out) >= target {
			break
		}
		if ctx.Err() != nil {
			slog.Warn("provider fan-out cancelled", "provider", s.Name(), "gathered", len(out))
			break
		}

		batch, err := s.Search(ctx, q, opts)
		if err != nil {
			if apperr.IsBudget(err) {
				slog.Warn("provider budget exceeded, stopping fan-out",
					"provider", s.Name(), "query", q.Text, "gathered", len(out))
				break
			}
			slog.Warn("provider query failed, skipping", "provider", s.Name(), "query", q.Text, "error", err)
			continue
		}

		for _, c := range batch {
			if _, ok := seen[c.URL]; ok {
				continue
			}
			seen[c.URL] = struct{}{}
			out = append(out, c)
			if len(out) >= target {
				break
			}
		}
	}

	return out
}

// sourceDomain extracts the bare registrable host from a URL.
func sourceDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
