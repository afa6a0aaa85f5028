package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/stefvuck/trailhead/internal/apperr"
	"github.com/stefvuck/trailhead/internal/domain"
	"github.com/stefvuck/trailhead/internal/quota"
)

const (
	articleSearchCost     = 1
	articleDefaultTimeout = 30 * time.Second
)

type ArticleClientConfig func(*ArticleClient)

// ArticleClient wraps a JSON web-search API for article candidates. With
// no API key it short-circuits to deterministic mock results.
type ArticleClient struct {
	base   url.URL
	apiKey string
	http   *http.Client
	ledger *quota.Ledger
	mock   *MockSearcher
}

func NewArticleClient(baseUrl, apiKey string, ledger *quota.Ledger, opts ...ArticleClientConfig) (*ArticleClient, error) {
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := &ArticleClient{
		base:   *base,
		apiKey: apiKey,
		ledger: ledger,
		http: &http.Client{
			Timeout: articleDefaultTimeout,
		},
	}

	if apiKey == "" {
		slog.Info("article search api key missing, running in mock mode")
		client.mock = NewMockSearcher(domain.ContentTypeArticle)
	}

	for _, cfg := range opts {
		cfg(client)
	}

	return client, nil
}

func WithHttpClient(httpClient *http.Client) ArticleClientConfig {
	return func(client *ArticleClient) {
		client.http = httpClient
	}
}

func (c *ArticleClient) Name() string {
	return "articles"
}

func (c *ArticleClient) ContentType() domain.ContentType {
	return domain.ContentTypeArticle
}

type articleSearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type articleSearchResponse struct {
	Results []articleResult `json:"results"`
}

type articleResult struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	WordCount   int    `json:"word_count"`
}

func (c *ArticleClient) Search(ctx context.Context, query domain.SearchQuery, opts SearchOptions) ([]domain.Candidate, error) {
	if c.mock != nil {
		return c.mock.Search(ctx, query, opts)
	}

	if err := c.ledger.Check(articleSearchCost); err != nil {
		return nil, err
	}

	req := articleSearchRequest{
		Query:      query.Text,
		MaxResults: opts.maxResults(),
	}

	var resp articleSearchResponse
	if err := c.do(ctx, http.MethodPost, "/v1/search", req, &resp); err != nil {
		return nil, apperr.NewProvider(c.Name(), err)
	}
	c.ledger.Record(articleSearchCost)

	candidates := make([]domain.Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.URL == "" {
			continue
		}
		candidates = append(candidates, normalizeArticle(r, query.SkillLevel))
	}
	return candidates, nil
}

func normalizeArticle(r articleResult, level domain.Difficulty) domain.Candidate {
	c := domain.Candidate{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		URL:          r.URL,
		SourceDomain: sourceDomain(r.URL),
		ContentType:  domain.ContentTypeArticle,
		Difficulty:   level,
		WordCount:    r.WordCount,
	}
	if c.ID == "" {
		c.ID = c.URL
	}
	if t, err := time.Parse(time.RFC3339, r.PublishedAt); err == nil {
		c.PublishedAt = t
	}
	return c
}

func (c *ArticleClient) do(ctx context.Context, method, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := c.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
