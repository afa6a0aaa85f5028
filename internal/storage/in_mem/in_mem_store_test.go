package in_mem

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/storage"
	"github.com/stefvuck/trailhead/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndGet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	rm := &domain.EnrichedRoadmap{
		Topic:      "juggling",
		SkillLevel: domain.DifficultyBeginner,
		CreatedAt:  time.Now(),
	}

	id, err := s.Save(ctx, rm)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "juggling", got.Topic)
}

func TestGetMissing(t *testing.T) {
	s := NewStore()

	_, err := s.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestListNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := s.Save(ctx, &domain.EnrichedRoadmap{
			Topic:     fmt.Sprintf("topic-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	res, err := s.List(ctx, pagination.OffsetRequest{Page: 1, Size: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(5), res.Total)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "topic-4", res.Items[0].Topic)
	assert.True(t, res.HasMore)

	res, err = s.List(ctx, pagination.OffsetRequest{Page: 2, Size: 3})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "topic-0", res.Items[1].Topic)
	assert.False(t, res.HasMore)
}
