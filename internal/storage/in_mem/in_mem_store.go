package in_mem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/storage"
	"github.com/stefvuck/trailhead/pkg/pagination"
)

// Store keeps roadmaps in process memory. Used in tests and when the
// service runs without a database.
type Store struct {
	mu       sync.RWMutex
	roadmaps map[uuid.UUID]domain.EnrichedRoadmap
}

func NewStore() *Store {
	return &Store{
		roadmaps: make(map[uuid.UUID]domain.EnrichedRoadmap),
	}
}

func (s *Store) Save(_ context.Context, roadmap *domain.EnrichedRoadmap) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if roadmap.ID == uuid.Nil {
		roadmap.ID = uuid.New()
	}
	s.roadmaps[roadmap.ID] = *roadmap
	return roadmap.ID, nil
}

func (s *Store) Get(_ context.Context, id uuid.UUID) (*domain.EnrichedRoadmap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rm, ok := s.roadmaps[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &rm, nil
}

func (s *Store) List(_ context.Context, req pagination.OffsetRequest) (*pagination.OffsetResult[domain.EnrichedRoadmap], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.EnrichedRoadmap, 0, len(s.roadmaps))
	for _, rm := range s.roadmaps {
		all = append(all, rm)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	offset := req.Offset()
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + req.Size
	if end > len(all) {
		end = len(all)
	}

	return pagination.NewOffsetResult(all[offset:end], int64(len(all)), req.Page, req.Size), nil
}
