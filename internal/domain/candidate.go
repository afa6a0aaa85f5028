package domain

import (
	"time"
)

// ContentType discriminates the two candidate variants.
type ContentType string

const (
	ContentTypeVideo   ContentType = "video"
	ContentTypeArticle ContentType = "article"
)

// Metrics carries provider engagement signals. Articles typically have
// none; the scoring engine substitutes a neutral default.
type Metrics struct {
	Views int64 `json:"views,omitempty"`
	Likes int64 `json:"likes,omitempty"`
}

// Candidate is a normalized content item returned by a provider search.
// Candidates live for one search invocation and are discarded once
// distributed.
type Candidate struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	URL          string      `json:"url"`
	SourceDomain string      `json:"sourceDomain,omitempty"`
	PublishedAt  time.Time   `json:"publishedAt,omitempty"`
	ContentType  ContentType `json:"contentType"`
	Difficulty   Difficulty  `json:"difficulty,omitempty"`
	Metrics      Metrics     `json:"metrics,omitempty"`

	// DurationSeconds is set for videos, WordCount for articles. Zero means
	// the provider did not report a value and the scoring engine estimates
	// one from title/description keywords.
	DurationSeconds int `json:"durationSeconds,omitempty"`
	WordCount       int `json:"wordCount,omitempty"`

	// QualityScore is the bounded [0,100] composite assigned by the scoring
	// engine; zero until scored.
	QualityScore int              `json:"qualityScore"`
	Quality      QualityBreakdown `json:"quality,omitempty"`
}

// QualityBreakdown holds the sub-scores feeding the final quality score.
// Each sub-score is bounded to [0,100] before weighting.
type QualityBreakdown struct {
	Authority  float64 `json:"authority"`
	Engagement float64 `json:"engagement"`
	Freshness  float64 `json:"freshness"`
	Relevance  float64 `json:"relevance"`
	Depth      float64 `json:"depth"`
	Bonus      float64 `json:"bonus"`
}

// AgeDays returns the candidate age in whole days relative to now, or -1
// when the publish date is unknown.
func (c *Candidate) AgeDays(now time.Time) int {
	if c.PublishedAt.IsZero() {
		return -1
	}
	return int(now.Sub(c.PublishedAt).Hours() / 24)
}
