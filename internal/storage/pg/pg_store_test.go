package pg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"

	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/storage"
	"github.com/stefvuck/trailhead/pkg/pagination"
	pkgtesting "github.com/stefvuck/trailhead/pkg/testing"
)

var (
	testCtx   context.Context
	testPool  *ConnectionPool
	testStore *Store
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "trailhead_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}
	defer testcontainers.TerminateContainer(pg.Container)

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		panic(err)
	}
	defer testPool.Close()

	testStore, err = NewStore(testPool)
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func truncateTable(t *testing.T) {
	t.Helper()
	_, err := testPool.GetConn().Exec(testCtx, "TRUNCATE TABLE roadmaps CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate table: %v", err)
	}
}

func sampleRoadmap(topic string, createdAt time.Time) *domain.EnrichedRoadmap {
	return &domain.EnrichedRoadmap{
		Topic:      topic,
		SkillLevel: domain.DifficultyBeginner,
		Milestones: []domain.EnrichedMilestone{
			{
				Milestone: domain.Milestone{ID: "m0", Title: "Three ball cascade", Difficulty: domain.DifficultyBeginner},
				Videos: []domain.Resource{
					{ID: "v0", Title: "Cascade tutorial", URL: "https://videos.example.com/v0", ContentType: domain.ContentTypeVideo, Quality: 80},
				},
				Articles: []domain.Resource{
					{ID: "fallback-article-0-0", Title: "Beginner reading resource 1", URL: domain.FallbackURL + "article/0/0", ContentType: domain.ContentTypeArticle, Quality: 50, Fallback: true},
				},
			},
		},
		Metadata: domain.SearchMetadata{
			SearchQueries: []domain.SearchQuery{{Text: topic + " tutorial", ContentType: domain.ContentTypeVideo}},
			Fallbacks:     domain.FallbackCounts{RealVideos: 1, FallbackArticles: 1},
		},
		CreatedAt: createdAt,
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	truncateTable(t)

	rm := sampleRoadmap("juggling", time.Now().UTC().Truncate(time.Microsecond))
	id, err := testStore.Save(testCtx, rm)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected a generated id")
	}

	got, err := testStore.Get(testCtx, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Topic != "juggling" {
		t.Errorf("topic = %q, want juggling", got.Topic)
	}
	if got.SkillLevel != domain.DifficultyBeginner {
		t.Errorf("skill level = %q", got.SkillLevel)
	}
	if len(got.Milestones) != 1 {
		t.Fatalf("milestones = %d, want 1", len(got.Milestones))
	}
	if got.Milestones[0].Videos[0].ID != "v0" {
		t.Errorf("video id = %q", got.Milestones[0].Videos[0].ID)
	}
	if !got.Milestones[0].Articles[0].Fallback {
		t.Error("fallback flag lost in round trip")
	}
	if got.Metadata.Fallbacks.RealVideos != 1 {
		t.Errorf("metadata realVideos = %d", got.Metadata.Fallbacks.RealVideos)
	}
}

func TestHealthChecker(t *testing.T) {
	if !NewHealthChecker(testStore).Healthy(testCtx) {
		t.Error("expected healthy store")
	}
	if NewHealthChecker(nil).Healthy(testCtx) {
		t.Error("nil store must report unhealthy")
	}
}

func TestGetMissingRoadmap(t *testing.T) {
	truncateTable(t)

	_, err := testStore.Get(testCtx, uuid.New())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPagination(t *testing.T) {
	truncateTable(t)

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 5; i++ {
		rm := sampleRoadmap(fmt.Sprintf("topic-%d", i), base.Add(time.Duration(i)*time.Minute))
		if _, err := testStore.Save(testCtx, rm); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	res, err := testStore.List(testCtx, pagination.OffsetRequest{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Total != 5 {
		t.Errorf("total = %d, want 5", res.Total)
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(res.Items))
	}
	if res.Items[0].Topic != "topic-4" {
		t.Errorf("expected newest first, got %q", res.Items[0].Topic)
	}
	if !res.HasMore {
		t.Error("expected HasMore on first page")
	}

	res, err = testStore.List(testCtx, pagination.OffsetRequest{Page: 3, Size: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(res.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(res.Items))
	}
	if res.HasMore {
		t.Error("last page must not report HasMore")
	}
}
