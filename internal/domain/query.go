package domain

// SearchQuery is one disambiguated search phrase for one content type.
// The text must commit to a single concrete interpretation of an ambiguous
// topic (e.g. "juggling" -> "3-ball juggling") held across every phrase of
// a batch.
type SearchQuery struct {
	Text        string      `json:"text"`
	ContentType ContentType `json:"contentType"`
	SkillLevel  Difficulty  `json:"skillLevel"`
}

// Classification describes the topic as judged by the query generator.
type Classification struct {
	Domain     string `json:"domain"`
	Complexity string `json:"complexity"`
}

// QueryPlan is the full output of the query generator: ordered phrases per
// content type plus classification and a short rationale. Degraded is set
// when the generative collaborator failed and the deterministic fallback
// produced the plan.
type QueryPlan struct {
	VideoQueries   []SearchQuery  `json:"videoQueries"`
	ArticleQueries []SearchQuery  `json:"articleQueries"`
	Classification Classification `json:"classification"`
	Reasoning      string         `json:"reasoning,omitempty"`
	Degraded       bool           `json:"degraded"`
}

// Queries returns the plan's phrases for the given content type.
func (p *QueryPlan) Queries(ct ContentType) []SearchQuery {
	if ct == ContentTypeVideo {
		return p.VideoQueries
	}
	return p.ArticleQueries
}
