package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefvuck/trailhead/internal/apperr"
	"github.com/stefvuck/trailhead/internal/cache"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/provider"
	"github.com/stefvuck/trailhead/internal/querygen"
	"github.com/stefvuck/trailhead/internal/search"
	"github.com/stefvuck/trailhead/internal/storage/in_mem"
)

type emptySearcher struct {
	contentType domain.ContentType
}

func (s emptySearcher) Name() string                    { return "empty" }
func (s emptySearcher) ContentType() domain.ContentType { return s.contentType }
func (s emptySearcher) Search(context.Context, domain.SearchQuery, provider.SearchOptions) ([]domain.Candidate, error) {
	return nil, nil
}

type mapCache struct {
	entries map[string]*domain.EnrichedRoadmap
	sets    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*domain.EnrichedRoadmap)}
}

func (c *mapCache) Get(_ context.Context, key string) (*domain.EnrichedRoadmap, error) {
	return c.entries[key], nil
}

func (c *mapCache) Set(_ context.Context, key string, rm *domain.EnrichedRoadmap) error {
	c.sets++
	c.entries[key] = rm
	return nil
}

func newTestRouter(opts ...RoadmapRouterOption) (*echo.Echo, *in_mem.Store) {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	orch := search.NewOrchestrator(
		querygen.NewGenerator(),
		emptySearcher{contentType: domain.ContentTypeVideo},
		emptySearcher{contentType: domain.ContentTypeArticle},
		search.DefaultConfig(),
	)
	store := in_mem.NewStore()

	NewRoadmapRouter(e, orch, store, opts...).Bind()
	return e, store
}

func enrichBody() string {
	return `{
		"topic": "juggling",
		"skillLevel": "beginner",
		"milestones": [
			{"id": "m0", "title": "Three ball cascade", "difficulty": "beginner", "order": 0},
			{"id": "m1", "title": "Mills mess", "difficulty": "advanced", "order": 1}
		]
	}`
}

func TestEnrichEndpoint(t *testing.T) {
	e, store := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/roadmaps/enrich", strings.NewReader(enrichBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var rm domain.EnrichedRoadmap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rm))
	assert.Equal(t, "juggling", rm.Topic)
	require.Len(t, rm.Milestones, 2)
	assert.Len(t, rm.Milestones[0].Videos, 3)
	assert.Len(t, rm.Milestones[0].Articles, 1)

	saved, err := store.Get(context.Background(), rm.ID)
	require.NoError(t, err)
	assert.Equal(t, rm.Topic, saved.Topic)
}

func TestEnrichValidation(t *testing.T) {
	e, _ := newTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"empty topic", `{"topic": "", "milestones": [{"id": "m0", "title": "x"}]}`},
		{"no milestones", `{"topic": "juggling", "milestones": []}`},
		{"bad skill level", `{"topic": "juggling", "skillLevel": "wizard", "milestones": [{"id": "m0", "title": "x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/roadmaps/enrich", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestEnrichCacheHit(t *testing.T) {
	// Matches the skeleton in enrichBody.
	bodyMilestones := []domain.Milestone{
		{ID: "m0", Title: "Three ball cascade", Difficulty: domain.DifficultyBeginner, Order: 0},
		{ID: "m1", Title: "Mills mess", Difficulty: domain.DifficultyAdvanced, Order: 1},
	}
	key := cache.Key("juggling", domain.DifficultyBeginner, bodyMilestones)

	c := newMapCache()
	cached := &domain.EnrichedRoadmap{
		ID:         uuid.New(),
		Topic:      "juggling",
		SkillLevel: domain.DifficultyBeginner,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, c.Set(context.Background(), key, cached))
	c.sets = 0

	e, _ := newTestRouter(WithCache(c))

	req := httptest.NewRequest(http.MethodPost, "/roadmaps/enrich", strings.NewReader(enrichBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "cache hit returns 200, not 201")

	var rm domain.EnrichedRoadmap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rm))
	assert.Equal(t, cached.ID, rm.ID)
	assert.Zero(t, c.sets, "cache hit must not re-store")
}

func TestEnrichCacheMissOnDifferentMilestones(t *testing.T) {
	staleKey := cache.Key("juggling", domain.DifficultyBeginner, []domain.Milestone{
		{ID: "old", Title: "Retired milestone", Difficulty: domain.DifficultyBeginner, Order: 0},
	})

	c := newMapCache()
	stale := &domain.EnrichedRoadmap{
		ID:         uuid.New(),
		Topic:      "juggling",
		SkillLevel: domain.DifficultyBeginner,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, c.Set(context.Background(), staleKey, stale))
	c.sets = 0

	e, _ := newTestRouter(WithCache(c))

	req := httptest.NewRequest(http.MethodPost, "/roadmaps/enrich", strings.NewReader(enrichBody()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, "different milestone skeleton must not hit the stale entry")

	var rm domain.EnrichedRoadmap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rm))
	assert.NotEqual(t, stale.ID, rm.ID)
	require.Len(t, rm.Milestones, 2)
	assert.Equal(t, 1, c.sets, "fresh roadmap is cached under its own key")
}

func TestGetEndpoint(t *testing.T) {
	e, store := newTestRouter()

	rm := &domain.EnrichedRoadmap{Topic: "juggling", CreatedAt: time.Now()}
	id, err := store.Save(context.Background(), rm)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roadmaps/"+id.String(), nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roadmaps/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roadmaps/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListEndpoint(t *testing.T) {
	e, store := newTestRouter()

	for i := 0; i < 3; i++ {
		_, err := store.Save(context.Background(), &domain.EnrichedRoadmap{
			Topic:     "juggling",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roadmaps?page=1&size=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Items   []domain.EnrichedRoadmap `json:"items"`
		Total   int64                    `json:"total"`
		HasMore bool                     `json:"has_more"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(3), result.Total)
	assert.True(t, result.HasMore)
}
