package querygen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stefvuck/trailhead/internal/domain"
)

var errEmptyReply = errors.New("model returned no queries")

const systemPrompt = `You generate search phrases for finding learning content.

If the topic is ambiguous, commit to exactly ONE concrete interpretation
(e.g. "juggling" means "3-ball toss juggling") and hold that interpretation
across every phrase you produce. Never mix interpretations.

Respond with strict JSON only, no prose, using this shape:
{
  "video_queries": ["..."],
  "article_queries": ["..."],
  "classification": {"domain": "...", "complexity": "beginner|intermediate|advanced"},
  "reasoning": "one short sentence"
}`

func userPrompt(topic string, level domain.Difficulty, msCtx *MilestoneContext, maxQueries int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\nSkill level: %s\nMax phrases per content type: %d\n", topic, level, maxQueries)

	if msCtx != nil {
		fmt.Fprintf(&b, "\nThe phrases should target this roadmap milestone:\nTitle: %s\n", msCtx.Title)
		if msCtx.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", msCtx.Description)
		}
		if msCtx.Difficulty != "" {
			fmt.Fprintf(&b, "Difficulty: %s\n", msCtx.Difficulty)
		}
	}

	b.WriteString("\nProduce the JSON now.")
	return b.String()
}
