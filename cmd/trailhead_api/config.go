package main

import (
	"os"
	"strconv"
	"time"

	"github.com/stefvuck/trailhead/internal/llm"
	"github.com/stefvuck/trailhead/internal/quota"
	"github.com/stefvuck/trailhead/internal/storage/factory"
)

type QuotaConfig struct {
	YouTube  quota.Limits
	Articles quota.Limits
}

type ProviderConfig struct {
	YouTubeAPIKey  string
	ArticleBaseURL string
	ArticleAPIKey  string
}

type LLMConfig struct {
	Enabled bool
	llm.Config
}

type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	TTL           time.Duration
}

type AppConfig struct {
	StorageConfig   *factory.StorageConfig
	ProviderConfig  ProviderConfig
	LLMConfig       LLMConfig
	QuotaConfig     QuotaConfig
	CacheConfig     CacheConfig
	AuthoritiesPath string
}

func LoadAppConfig() (*AppConfig, error) {
	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}

	llmProvider := os.Getenv("LLM_PROVIDER")
	llmCfg := LLMConfig{
		Enabled: llmProvider != "",
		Config: llm.Config{
			Provider:        llm.Provider(llmProvider),
			Model:           os.Getenv("LLM_MODEL"),
			OllamaHost:      os.Getenv("OLLAMA_HOST"),
			OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
	}

	return &AppConfig{
		StorageConfig: storageCfg,
		ProviderConfig: ProviderConfig{
			YouTubeAPIKey:  os.Getenv("YOUTUBE_API_KEY"),
			ArticleBaseURL: envOr("ARTICLE_API_URL", "https://api.articles.example.com"),
			ArticleAPIKey:  os.Getenv("ARTICLE_API_KEY"),
		},
		LLMConfig: llmCfg,
		QuotaConfig: QuotaConfig{
			YouTube: quota.Limits{
				PerMinute:    envInt("YOUTUBE_QUOTA_PER_MINUTE", 30),
				PerHour:      envInt("YOUTUBE_QUOTA_PER_HOUR", 300),
				DailyCostCap: envFloat("YOUTUBE_DAILY_COST_CAP", 10000),
			},
			Articles: quota.Limits{
				PerMinute:    envInt("ARTICLE_QUOTA_PER_MINUTE", 60),
				PerHour:      envInt("ARTICLE_QUOTA_PER_HOUR", 1000),
				DailyCostCap: envFloat("ARTICLE_DAILY_COST_CAP", 5000),
			},
		},
		CacheConfig: CacheConfig{
			RedisAddr:     os.Getenv("REDIS_ADDR"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			TTL:           envDuration("ROADMAP_CACHE_TTL", 0),
		},
		AuthoritiesPath: os.Getenv("AUTHORITY_SOURCES_PATH"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
