package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/storage"
	"github.com/stefvuck/trailhead/pkg/pagination"
)

// Store persists enriched roadmaps in Postgres. Milestones and sourcing
// metadata are stored as jsonb alongside the queryable columns.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) (*Store, error) {
	return &Store{db: pool.conn}, nil
}

func (s *Store) Save(ctx context.Context, roadmap *domain.EnrichedRoadmap) (uuid.UUID, error) {
	if roadmap.ID == uuid.Nil {
		roadmap.ID = uuid.New()
	}
	if roadmap.CreatedAt.IsZero() {
		roadmap.CreatedAt = time.Now()
	}

	milestonesJSON, err := json.Marshal(roadmap.Milestones)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to marshal milestones: %w", err)
	}
	metadataJSON, err := json.Marshal(roadmap.Metadata)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	cmd := `
        INSERT INTO roadmaps (id, topic, skill_level, milestones, metadata, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id;
    `
	var id uuid.UUID
	err = s.db.QueryRow(
		ctx,
		cmd,
		roadmap.ID,
		roadmap.Topic,
		string(roadmap.SkillLevel),
		milestonesJSON,
		metadataJSON,
		roadmap.CreatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to insert roadmap: %w", err)
	}

	return id, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.EnrichedRoadmap, error) {
	sql := `
		SELECT id, topic, skill_level, milestones, metadata, created_at
		FROM roadmaps
		WHERE id = $1;
	`
	var (
		rm             domain.EnrichedRoadmap
		skillLevel     string
		milestonesJSON []byte
		metadataJSON   []byte
	)
	err := s.db.QueryRow(ctx, sql, id).Scan(
		&rm.ID,
		&rm.Topic,
		&skillLevel,
		&milestonesJSON,
		&metadataJSON,
		&rm.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query roadmap: %w", err)
	}

	rm.SkillLevel = domain.Difficulty(skillLevel)
	if err := json.Unmarshal(milestonesJSON, &rm.Milestones); err != nil {
		return nil, fmt.Errorf("failed to unmarshal milestones: %w", err)
	}
	if err := json.Unmarshal(metadataJSON, &rm.Metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	return &rm, nil
}

func (s *Store) List(ctx context.Context, req pagination.OffsetRequest) (*pagination.OffsetResult[domain.EnrichedRoadmap], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM roadmaps;`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count roadmaps: %w", err)
	}

	sql := `
		SELECT id, topic, skill_level, milestones, metadata, created_at
		FROM roadmaps
		ORDER BY created_at DESC
		LIMIT $1
		OFFSET $2;
	`
	dbRows, err := s.db.Query(ctx, sql, req.Size, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list roadmaps: %w", err)
	}
	defer dbRows.Close()

	var roadmaps []domain.EnrichedRoadmap
	for dbRows.Next() {
		var (
			rm             domain.EnrichedRoadmap
			skillLevel     string
			milestonesJSON []byte
			metadataJSON   []byte
		)
		if err := dbRows.Scan(
			&rm.ID,
			&rm.Topic,
			&skillLevel,
			&milestonesJSON,
			&metadataJSON,
			&rm.CreatedAt,
		); err != nil {
			return nil, err
		}

		rm.SkillLevel = domain.Difficulty(skillLevel)
		if err := json.Unmarshal(milestonesJSON, &rm.Milestones); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(metadataJSON, &rm.Metadata); err != nil {
			return nil, err
		}

		roadmaps = append(roadmaps, rm)
	}
	if err := dbRows.Err(); err != nil {
		return nil, err
	}

	return pagination.NewOffsetResult(roadmaps, total, req.Page, req.Size), nil
}
