// Package distribute matches scored candidates to roadmap milestones and
// assigns each milestone its fixed quota of content.
package distribute

import (
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/scoring"
	"github.com/stefvuck/trailhead/internal/textutil"
)

// Relevance component weights. Term overlap dominates; quality and
// authority act as tie-breaking bonuses.
const (
	overlapWeight   = 40.0
	difficultyExact = 20.0
	difficultyNear  = 10.0
	lengthWeight    = 15.0
	qualityWeight   = 15.0
	authorityBonus  = 10.0
	maxMatchScore   = overlapWeight + difficultyExact + lengthWeight + qualityWeight + authorityBonus
)

type Matcher struct {
	authority *scoring.Registry
}

func NewMatcher(authority *scoring.Registry) *Matcher {
	return &Matcher{authority: authority}
}

// Score computes the relevance of a candidate to a milestone as a weighted
// sum of shared significant terms, difficulty compatibility, length
// appropriateness, candidate quality, and a small bonus for recognized
// authoritative sources.
func (m *Matcher) Score(c *domain.Candidate, ms *domain.Milestone) float64 {
	msTerms := textutil.SignificantTerms(ms.Title + " " + ms.Description)
	candTerms := textutil.SignificantTerms(c.Title + " " + c.Description)

	score := textutil.Overlap(msTerms, candTerms) * overlapWeight

	switch diff := levelDistance(c.Difficulty, ms.Difficulty); diff {
	case 0:
		score += difficultyExact
	case 1:
		score += difficultyNear
	}

	score += lengthFit(c, ms.Difficulty) * lengthWeight
	score += float64(c.QualityScore) / 100 * qualityWeight

	if m.authority.IsAuthoritative(c.SourceDomain) {
		score += authorityBonus
	}

	return score
}

func levelDistance(a, b domain.Difficulty) int {
	d := a.Level() - b.Level()
	if d < 0 {
		return -d
	}
	return d
}

// lengthFit scores how appropriate the candidate's length is for the
// milestone's difficulty: shorter preferred for beginner, longer tolerated
// for advanced.
func lengthFit(c *domain.Candidate, difficulty domain.Difficulty) float64 {
	if c.ContentType == domain.ContentTypeVideo {
		return videoLengthFit(c.DurationSeconds, difficulty)
	}
	return articleLengthFit(c.WordCount, difficulty)
}

func videoLengthFit(seconds int, difficulty domain.Difficulty) float64 {
	if seconds <= 0 {
		return 0.5
	}
	switch difficulty {
	case domain.DifficultyBeginner:
		switch {
		case seconds <= 900:
			return 1.0
		case seconds <= 1800:
			return 0.6
		default:
			return 0.3
		}
	case domain.DifficultyAdvanced:
		if seconds >= 900 {
			return 1.0
		}
		return 0.6
	default:
		if seconds <= 2700 {
			return 1.0
		}
		return 0.7
	}
}

func articleLengthFit(words int, difficulty domain.Difficulty) float64 {
	if words <= 0 {
		return 0.5
	}
	switch difficulty {
	case domain.DifficultyBeginner:
		switch {
		case words <= 1500:
			return 1.0
		case words <= 3000:
			return 0.6
		default:
			return 0.3
		}
	case domain.DifficultyAdvanced:
		if words >= 1500 {
			return 1.0
		}
		return 0.6
	default:
		if words <= 4000 {
			return 1.0
		}
		return 0.7
	}
}
