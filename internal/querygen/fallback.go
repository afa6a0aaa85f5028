package querygen

import (
	"sort"
	"strings"

	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/textutil"
)

const DefaultMaxQueries = 3

// fillerPrefixes are stripped from the front of a topic before phrase
// expansion.
var fillerPrefixes = []string{
	"how to ",
	"how do i ",
	"learn to ",
	"learn ",
	"learning ",
	"tutorial on ",
	"intro to ",
	"introduction to ",
}

var fillerWords = map[string]struct{}{
	"tutorial": {},
	"course":   {},
	"lessons":  {},
}

// FallbackPlan deterministically derives a query plan from the topic alone.
// It strips filler words, appends a fixed suffix set per content type, and
// when milestone context is present splices in the milestone's most
// frequent significant terms to bias relevance.
func FallbackPlan(topic string, level domain.Difficulty, msCtx *MilestoneContext, maxQueries int) *domain.QueryPlan {
	if maxQueries <= 0 {
		maxQueries = DefaultMaxQueries
	}

	base := cleanTopic(topic)
	if msCtx != nil {
		if bias := milestoneBias(msCtx, base); bias != "" {
			base = base + " " + bias
		}
	}

	levelWord := string(level)
	if levelWord == "" {
		levelWord = string(domain.DifficultyBeginner)
	}

	videoPhrases := []string{
		base + " tutorial",
		base + " for " + levelWord + "s",
		base + " examples",
	}
	articlePhrases := []string{
		base + " guide",
		base + " " + levelWord + " guide",
		base + " best practices",
	}

	plan := &domain.QueryPlan{
		Classification: domain.Classification{
			Domain:     "general",
			Complexity: levelWord,
		},
		Reasoning: "deterministic fallback: keyword expansion of the topic",
		Degraded:  true,
	}
	plan.VideoQueries = toQueries(videoPhrases, domain.ContentTypeVideo, level, maxQueries)
	plan.ArticleQueries = toQueries(articlePhrases, domain.ContentTypeArticle, level, maxQueries)

	return plan
}

// cleanTopic strips filler prefixes and filler words, collapsing
// whitespace. An all-filler topic falls back to the raw trimmed input.
func cleanTopic(topic string) string {
	t := strings.ToLower(strings.TrimSpace(topic))
	for stripped := true; stripped; {
		stripped = false
		for _, p := range fillerPrefixes {
			if strings.HasPrefix(t, p) {
				t = strings.TrimPrefix(t, p)
				stripped = true
			}
		}
	}

	var kept []string
	for _, w := range strings.Fields(t) {
		if _, ok := fillerWords[w]; ok {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return strings.TrimSpace(strings.ToLower(topic))
	}
	return strings.Join(kept, " ")
}

// milestoneBias returns up to two of the milestone's most frequent
// significant terms not already present in the base phrase. Frequency ties
// break alphabetically so the result is reproducible.
func milestoneBias(msCtx *MilestoneContext, base string) string {
	freq := textutil.TermFrequencies(msCtx.Title + " " + msCtx.Description)
	baseTerms := make(map[string]struct{})
	for _, t := range textutil.Tokenize(base) {
		baseTerms[t] = struct{}{}
	}

	type termCount struct {
		term  string
		count int
	}
	var terms []termCount
	for term, count := range freq {
		if _, ok := baseTerms[term]; ok {
			continue
		}
		terms = append(terms, termCount{term, count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].count != terms[j].count {
			return terms[i].count > terms[j].count
		}
		return terms[i].term < terms[j].term
	})

	if len(terms) > 2 {
		terms = terms[:2]
	}
	parts := make([]string, 0, len(terms))
	for _, tc := range terms {
		parts = append(parts, tc.term)
	}
	return strings.Join(parts, " ")
}
