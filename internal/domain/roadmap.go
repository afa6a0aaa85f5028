package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FallbackURL is the sentinel URL of a synthesized placeholder resource.
const FallbackURL = "https://content.unavailable/"

// Resource is one slot of a milestone's enriched content: either a real
// candidate or a synthesized fallback placeholder.
type Resource struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	URL         string      `json:"url"`
	ContentType ContentType `json:"contentType"`
	Quality     int         `json:"quality"`
	Fallback    bool        `json:"fallback"`
}

// EnrichedMilestone is a milestone plus its assigned resources. The videos
// and articles slices always have exactly the configured per-milestone
// quota length.
type EnrichedMilestone struct {
	Milestone
	Videos   []Resource `json:"videos"`
	Articles []Resource `json:"articles"`
}

// Resources returns videos and articles merged, videos first.
func (m *EnrichedMilestone) Resources() []Resource {
	out := make([]Resource, 0, len(m.Videos)+len(m.Articles))
	out = append(out, m.Videos...)
	out = append(out, m.Articles...)
	return out
}

// MarshalJSON adds the merged resources list consumers read alongside the
// per-type slices. The field is derived, so unmarshalling ignores it.
func (m EnrichedMilestone) MarshalJSON() ([]byte, error) {
	type alias EnrichedMilestone
	return json.Marshal(struct {
		alias
		Resources []Resource `json:"resources"`
	}{alias(m), m.Resources()})
}

// APIResults counts raw provider results per content type.
type APIResults struct {
	Videos   int `json:"videos"`
	Articles int `json:"articles"`
}

// FallbackCounts reports real vs synthesized slots for observability.
type FallbackCounts struct {
	RealVideos       int `json:"realVideos"`
	RealArticles     int `json:"realArticles"`
	FallbackVideos   int `json:"fallbackVideos"`
	FallbackArticles int `json:"fallbackArticles"`
}

// SearchMetadata describes how a roadmap's content was sourced. Degraded
// sourcing (fallback items, relaxed thresholds, disabled providers) is
// reported here and never by omitting milestones or leaving slots empty.
type SearchMetadata struct {
	SearchQueries  []SearchQuery  `json:"searchQueries"`
	Classification Classification `json:"classification"`
	Degraded       bool           `json:"degraded"`
	APIResults     APIResults     `json:"apiResults"`
	Fallbacks      FallbackCounts `json:"fallbacks"`
}

// EnrichedRoadmap is the object handed to the roadmap consumer.
type EnrichedRoadmap struct {
	ID         uuid.UUID           `json:"id"`
	Topic      string              `json:"topic"`
	SkillLevel Difficulty          `json:"skillLevel"`
	Milestones []EnrichedMilestone `json:"milestones"`
	Metadata   SearchMetadata      `json:"metadata"`
	CreatedAt  time.Time           `json:"createdAt"`
}
