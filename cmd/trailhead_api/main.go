package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/stefvuck/trailhead/internal/cache"
	"github.com/stefvuck/trailhead/internal/llm"
	"github.com/stefvuck/trailhead/internal/provider"
	"github.com/stefvuck/trailhead/internal/querygen"
	"github.com/stefvuck/trailhead/internal/quota"
	"github.com/stefvuck/trailhead/internal/router"
	"github.com/stefvuck/trailhead/internal/scoring"
	"github.com/stefvuck/trailhead/internal/search"
	"github.com/stefvuck/trailhead/internal/server"
	"github.com/stefvuck/trailhead/internal/storage/factory"
	"github.com/stefvuck/trailhead/internal/storage/pg"
	pkgserver "github.com/stefvuck/trailhead/pkg/server"
)

func main() {
	logger, cleanup := server.SetupLogger(os.Getenv("LOG_FILE"), slog.LevelDebug)
	slog.SetDefault(logger)
	defer func() { _ = cleanup() }()

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	cfg, err := LoadAppConfig()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	store, err := factory.NewStore(context.Background(), cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create roadmap store", "error", err)
		os.Exit(1)
		return
	}

	var healthChecker pkgserver.HealthChecker = pkgserver.NewOkHealthChecker()
	if pgStore, ok := store.(*pg.Store); ok {
		healthChecker = pg.NewHealthChecker(pgStore)
	}

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Trailhead API is running")
	})

	var genOpts []querygen.GeneratorOption
	if cfg.LLMConfig.Enabled {
		model, err := llm.NewModel(cfg.LLMConfig.Config)
		if err != nil {
			slog.Error("Failed to create LLM model", "error", err)
			os.Exit(1)
			return
		}
		genOpts = append(genOpts, querygen.WithModel(model))
		slog.Info("LLM query generation enabled", "provider", cfg.LLMConfig.Provider, "model", cfg.LLMConfig.Model)
	} else {
		slog.Info("LLM query generation disabled, using deterministic fallback")
	}
	queryGen := querygen.NewGenerator(genOpts...)

	youtubeLedger := quota.NewLedger("youtube", cfg.QuotaConfig.YouTube)
	articleLedger := quota.NewLedger("articles", cfg.QuotaConfig.Articles)

	videos, err := provider.NewYouTubeClient(s.Context(), cfg.ProviderConfig.YouTubeAPIKey, youtubeLedger)
	if err != nil {
		slog.Error("Failed to create YouTube client", "error", err)
		os.Exit(1)
		return
	}
	articles, err := provider.NewArticleClient(cfg.ProviderConfig.ArticleBaseURL, cfg.ProviderConfig.ArticleAPIKey, articleLedger)
	if err != nil {
		slog.Error("Failed to create article client", "error", err)
		os.Exit(1)
		return
	}

	var engineOpts []scoring.EngineOption
	if cfg.AuthoritiesPath != "" {
		registry := scoring.NewRegistry()
		f, err := os.Open(cfg.AuthoritiesPath)
		if err != nil {
			slog.Error("Failed to open authority sources file", "error", err, "path", cfg.AuthoritiesPath)
			os.Exit(1)
			return
		}
		if err := registry.LoadYAML(f); err != nil {
			_ = f.Close()
			slog.Error("Failed to load authority sources", "error", err)
			os.Exit(1)
			return
		}
		_ = f.Close()
		engineOpts = append(engineOpts, scoring.WithAuthority(registry))
	}

	orch := search.NewOrchestrator(
		queryGen,
		videos,
		articles,
		search.DefaultConfig(),
		search.WithScoringEngine(scoring.NewEngine(engineOpts...)),
	)

	var routerOpts []router.RoadmapRouterOption
	if cfg.CacheConfig.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(s.Context(), cache.RedisConfig{
			Addr:     cfg.CacheConfig.RedisAddr,
			Password: cfg.CacheConfig.RedisPassword,
			TTL:      cfg.CacheConfig.TTL,
		})
		if err != nil {
			slog.Error("Failed to create redis cache", "error", err)
			os.Exit(1)
			return
		}
		defer func() { _ = redisCache.Close() }()
		routerOpts = append(routerOpts, router.WithCache(redisCache))
		slog.Info("Roadmap cache enabled", "addr", cfg.CacheConfig.RedisAddr)
	} else {
		slog.Info("Roadmap cache disabled")
	}

	roadmapRouter := router.NewRoadmapRouter(s.Echo, orch, store, routerOpts...)
	roadmapRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
