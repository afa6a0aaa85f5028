package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/pkg/pagination"
)

// Store persists enriched roadmaps so a consumer can fetch a previously
// generated result without re-running the search pipeline.
type Store interface {
	Save(ctx context.Context, roadmap *domain.EnrichedRoadmap) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.EnrichedRoadmap, error)
	List(ctx context.Context, req pagination.OffsetRequest) (*pagination.OffsetResult[domain.EnrichedRoadmap], error)
}

type Type string

const (
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StoreError string

const (
	ErrUnsupportedStore StoreError = "unsupported store type"
	ErrNotFound         StoreError = "roadmap not found"
)

func (e StoreError) Error() string {
	return string(e)
}
