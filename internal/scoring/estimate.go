package scoring

import (
	"strings"

	"github.com/stefvuck/trailhead/internal/domain"
)

// Estimated lengths for candidates whose duration or word count could not
// be parsed from the provider payload.
const (
	videoShortSeconds   = 240
	videoDefaultSeconds = 900
	videoLongSeconds    = 3600

	articleShortWords   = 500
	articleDefaultWords = 1200
	articleLongWords    = 3000
)

var longFormKeywords = []string{"complete", "full course", "masterclass", "deep dive", "in depth", "in-depth", "comprehensive", "bootcamp"}

var shortFormKeywords = []string{"quick", "in 5 minutes", "in 10 minutes", "crash", "shorts", "cheat sheet", "tl;dr", "overview"}

// EstimateLength fills in a missing duration (video) or word count
// (article) from title/description keywords: long-form keywords bias
// toward a longer estimate, short-form keywords toward a shorter one.
// Candidates are never dropped for an unparseable length.
func EstimateLength(c *domain.Candidate) {
	if c.ContentType == domain.ContentTypeVideo && c.DurationSeconds > 0 {
		return
	}
	if c.ContentType == domain.ContentTypeArticle && c.WordCount > 0 {
		return
	}

	text := strings.ToLower(c.Title + " " + c.Description)
	form := 0
	for _, kw := range longFormKeywords {
		if strings.Contains(text, kw) {
			form = 1
			break
		}
	}
	if form == 0 {
		for _, kw := range shortFormKeywords {
			if strings.Contains(text, kw) {
				form = -1
				break
			}
		}
	}

	if c.ContentType == domain.ContentTypeVideo {
		switch form {
		case 1:
			c.DurationSeconds = videoLongSeconds
		case -1:
			c.DurationSeconds = videoShortSeconds
		default:
			c.DurationSeconds = videoDefaultSeconds
		}
		return
	}

	switch form {
	case 1:
		c.WordCount = articleLongWords
	case -1:
		c.WordCount = articleShortWords
	default:
		c.WordCount = articleDefaultWords
	}
}
