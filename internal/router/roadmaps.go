// Package router binds the roadmap-enrichment HTTP endpoints.
package router

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stefvuck/trailhead/internal/apperr"
	"github.com/stefvuck/trailhead/internal/cache"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/search"
	"github.com/stefvuck/trailhead/internal/storage"
	"github.com/stefvuck/trailhead/pkg/pagination"
)

type RoadmapRouter struct {
	e     *echo.Echo
	orch  *search.Orchestrator
	store storage.Store
	cache cache.RoadmapCache
}

type RoadmapRouterOption func(*RoadmapRouter)

func WithCache(c cache.RoadmapCache) RoadmapRouterOption {
	return func(r *RoadmapRouter) {
		r.cache = c
	}
}

func NewRoadmapRouter(e *echo.Echo, orch *search.Orchestrator, store storage.Store, opts ...RoadmapRouterOption) *RoadmapRouter {
	r := &RoadmapRouter{
		e:     e,
		orch:  orch,
		store: store,
		cache: cache.NewNoopCache(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RoadmapRouter) Bind() {
	r.e.POST("/roadmaps/enrich", r.enrichHandler)
	r.e.GET("/roadmaps/:id", r.getHandler)
	r.e.GET("/roadmaps", r.listHandler)
}

type milestoneRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Order       int    `json:"order"`
}

type enrichRequest struct {
	Topic      string             `json:"topic"`
	SkillLevel string             `json:"skillLevel"`
	Milestones []milestoneRequest `json:"milestones"`
}

func (r *RoadmapRouter) enrichHandler(c echo.Context) error {
	var req enrichRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidation("invalid request body")
	}

	level := domain.Difficulty(req.SkillLevel)
	if req.SkillLevel == "" {
		level = domain.DifficultyBeginner
	} else if !level.Valid() {
		return apperr.NewValidation("skillLevel must be one of beginner, intermediate, advanced")
	}

	ctx := c.Request().Context()

	milestones := make([]domain.Milestone, len(req.Milestones))
	for i, m := range req.Milestones {
		milestones[i] = domain.Milestone{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Difficulty:  domain.Difficulty(m.Difficulty),
			Order:       m.Order,
		}
	}

	key := cache.Key(req.Topic, level, milestones)
	if cached, err := r.cache.Get(ctx, key); err == nil && cached != nil {
		return c.JSON(http.StatusOK, cached)
	}

	roadmap, err := r.orch.Enrich(ctx, search.Request{
		Topic:      req.Topic,
		SkillLevel: level,
		Milestones: milestones,
	})
	if err != nil {
		return err
	}

	if _, err := r.store.Save(ctx, roadmap); err != nil {
		return err
	}
	if err := r.cache.Set(ctx, key, roadmap); err != nil {
		c.Logger().Warn("failed to cache roadmap: ", err)
	}

	return c.JSON(http.StatusCreated, roadmap)
}

func (r *RoadmapRouter) getHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidation("id must be a valid UUID")
	}

	roadmap, err := r.store.Get(c.Request().Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "roadmap not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, roadmap)
}

func (r *RoadmapRouter) listHandler(c echo.Context) error {
	var req pagination.OffsetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidation("invalid pagination parameters")
	}

	result, err := r.store.List(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}
