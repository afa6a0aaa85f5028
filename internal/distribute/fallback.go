package distribute

import (
	"fmt"
	"strings"

	"github.com/stefvuck/trailhead/internal/domain"
)

// FallbackQuality is the fixed neutral quality score of synthesized
// placeholders.
const FallbackQuality = 50

// FallbackResource deterministically synthesizes a placeholder for an
// unfillable slot. The same milestone index and slot index always produce
// the same resource; a sentinel URL signals "not available".
func FallbackResource(ms *domain.Milestone, ct domain.ContentType, milestoneIdx, slotIdx int) domain.Resource {
	tier := string(ms.Difficulty)
	if tier == "" {
		tier = string(domain.DifficultyIntermediate)
	}
	tier = strings.ToUpper(tier[:1]) + tier[1:]

	noun := "video"
	if ct == domain.ContentTypeArticle {
		noun = "article"
	}

	return domain.Resource{
		ID:          fmt.Sprintf("fallback-%s-%d-%d", ct, milestoneIdx, slotIdx),
		Title:       fmt.Sprintf("%s %s resource %d", tier, noun, slotIdx+1),
		Description: fmt.Sprintf("Suggested %s content for this step is not available yet.", noun),
		URL:         fmt.Sprintf("%s%s/%d/%d", domain.FallbackURL, ct, milestoneIdx, slotIdx),
		ContentType: ct,
		Quality:     FallbackQuality,
		Fallback:    true,
	}
}
