// Package cache holds recently generated roadmaps keyed by the full
// enrichment request, so repeated requests skip the provider fan-out and
// its quota spend.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/stefvuck/trailhead/internal/domain"
)

const DefaultTTL = 6 * time.Hour

type RoadmapCache interface {
	// Get returns the cached roadmap or (nil, nil) on a miss. Cache
	// failures are reported as a miss, never as an error.
	Get(ctx context.Context, key string) (*domain.EnrichedRoadmap, error)
	Set(ctx context.Context, key string, roadmap *domain.EnrichedRoadmap) error
}

// Key normalizes the enrichment request into the cache key. Topics
// differing only in case or surrounding whitespace share an entry; the
// milestone skeleton is digested so the same topic with different
// milestones never serves a stale roadmap.
func Key(topic string, level domain.Difficulty, milestones []domain.Milestone) string {
	h := sha256.New()
	for _, m := range milestones {
		fmt.Fprintf(h, "%s|%s|%s|%d\n", m.ID, m.Title, m.Difficulty, m.Order)
	}
	digest := hex.EncodeToString(h.Sum(nil))[:12]
	return "roadmap:" + strings.ToLower(strings.TrimSpace(topic)) + ":" + string(level) + ":" + digest
}
