package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichedMilestoneMarshalsResources(t *testing.T) {
	m := EnrichedMilestone{
		Milestone: Milestone{ID: "m0", Title: "Three ball cascade", Difficulty: DifficultyBeginner},
		Videos: []Resource{
			{ID: "v1", Title: "Cascade basics", URL: "https://youtube.com/watch?v=v1", ContentType: ContentTypeVideo, Quality: 80},
			{ID: "v2", Title: "Cascade drills", URL: "https://youtube.com/watch?v=v2", ContentType: ContentTypeVideo, Quality: 70},
		},
		Articles: []Resource{
			{ID: "a1", Title: "Cascade guide", URL: "https://example.org/cascade", ContentType: ContentTypeArticle, Quality: 65},
		},
	}

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var payload struct {
		Title     string     `json:"title"`
		Videos    []Resource `json:"videos"`
		Articles  []Resource `json:"articles"`
		Resources []Resource `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.Equal(t, "Three ball cascade", payload.Title)
	assert.Len(t, payload.Videos, 2)
	assert.Len(t, payload.Articles, 1)

	require.Len(t, payload.Resources, 3, "merged list carries every slot")
	assert.Equal(t, "v1", payload.Resources[0].ID, "videos come first")
	assert.Equal(t, "v2", payload.Resources[1].ID)
	assert.Equal(t, "a1", payload.Resources[2].ID)
}

func TestEnrichedMilestoneRoundTrip(t *testing.T) {
	m := EnrichedMilestone{
		Milestone: Milestone{ID: "m0", Title: "Three ball cascade", Difficulty: DifficultyBeginner},
		Videos:    []Resource{{ID: "v1", URL: "https://youtube.com/watch?v=v1", ContentType: ContentTypeVideo}},
		Articles:  []Resource{{ID: "a1", URL: "https://example.org/cascade", ContentType: ContentTypeArticle}},
	}

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var back EnrichedMilestone
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, m, back, "derived resources field does not leak into the decoded value")
}
