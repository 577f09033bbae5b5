package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// Ensure SerpAPI implements the interface.
var _ driven.SearchProvider = (*SerpAPI)(nil)

// DefaultSerpAPIURL is the SerpAPI search endpoint.
const DefaultSerpAPIURL = "https://serpapi.com/search"

// defaultHTTPTimeout bounds provider calls when the caller sets no deadline.
const defaultHTTPTimeout = 15 * time.Second

// SerpAPIConfig holds configuration for the SerpAPI provider.
type SerpAPIConfig struct {
	// APIKey is required.
	APIKey string

	// BaseURL overrides the endpoint (default: DefaultSerpAPIURL).
	BaseURL string

	// HTTPClient overrides the HTTP client.
	HTTPClient *http.Client

	// RateLimit overrides DefaultRateLimit.
	RateLimit RateLimitConfig
}

// SerpAPI searches Google through SerpAPI.
type SerpAPI struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *RateLimiter
}

// NewSerpAPI creates a SerpAPI provider.
func NewSerpAPI(cfg SerpAPIConfig) (*SerpAPI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: serpapi key is empty", domain.ErrProviderNotConfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultSerpAPIURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &SerpAPI{
		client:  cfg.HTTPClient,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: NewRateLimiter(cfg.RateLimit),
	}, nil
}

type serpResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
	AnswerBox *struct {
		Snippet string `json:"snippet"`
		Answer  string `json:"answer"`
		Link    string `json:"link"`
	} `json:"answer_box"`
}

// Name returns "serpapi".
func (s *SerpAPI) Name() string {
	return domain.ProviderSerpAPI.String()
}

// Search runs the query against Google via SerpAPI.
func (s *SerpAPI) Search(ctx context.Context, query string, limit int) (*domain.ProviderResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", s.apiKey)
	params.Set("num", strconv.Itoa(limit))
	params.Set("hl", "en")
	params.Set("gl", "us")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			s.limiter.RecordRateLimitError(retryAfter(resp.Header))
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, statusError(s.Name(), resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if data.Error != "" {
		return nil, fmt.Errorf("serpapi: %s", data.Error)
	}

	out := &domain.ProviderResponse{
		Items: make([]domain.SearchResultItem, 0, len(data.OrganicResults)),
	}
	for _, r := range data.OrganicResults {
		out.Items = append(out.Items, domain.SearchResultItem{
			Title:     r.Title,
			Snippet:   r.Snippet,
			SourceURL: r.Link,
		})
	}
	if box := data.AnswerBox; box != nil {
		snippet := box.Snippet
		if snippet == "" {
			snippet = box.Answer
		}
		if snippet != "" {
			out.DirectAnswer = &domain.SearchResultItem{
				Title:     domain.FeaturedAnswerTitle,
				Snippet:   snippet,
				SourceURL: box.Link,
			}
		}
	}
	return out, nil
}
