package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/kcc-assistant/internal/core/domain"
	"github.com/custodia-labs/kcc-assistant/internal/core/ports/driven"
)

// Ensure DuckDuckGo implements the interface.
var _ driven.SearchProvider = (*DuckDuckGo)(nil)

// DefaultDuckDuckGoURL is the Instant Answer API endpoint.
const DefaultDuckDuckGoURL = "https://api.duckduckgo.com/"

// DuckDuckGoConfig holds configuration for the keyless provider.
type DuckDuckGoConfig struct {
	// BaseURL overrides the endpoint (default: DefaultDuckDuckGoURL).
	BaseURL string

	// HTTPClient overrides the HTTP client.
	HTTPClient *http.Client

	// RateLimit overrides DefaultRateLimit.
	RateLimit RateLimitConfig
}

// DuckDuckGo searches the DuckDuckGo Instant Answer API. It needs no key.
type DuckDuckGo struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// NewDuckDuckGo creates the keyless provider.
func NewDuckDuckGo(cfg DuckDuckGoConfig) *DuckDuckGo {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultDuckDuckGoURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &DuckDuckGo{
		client:  cfg.HTTPClient,
		baseURL: cfg.BaseURL,
		limiter: NewRateLimiter(cfg.RateLimit),
	}
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Name     string     `json:"Name"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

// Name returns "duckduckgo".
func (d *DuckDuckGo) Name() string {
	return domain.ProviderDuckDuckGo.String()
}

// Search runs the query. The abstract, when present, is the direct answer
// and related topics (flattened one level) are the organic results.
func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) (*domain.ProviderResponse, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			d.limiter.RecordRateLimitError(retryAfter(resp.Header))
		}
		return nil, statusError(d.Name(), resp.StatusCode, "")
	}

	var data ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	out := &domain.ProviderResponse{}
	if data.AbstractText != "" {
		out.DirectAnswer = &domain.SearchResultItem{
			Title:     domain.FeaturedAnswerTitle,
			Snippet:   data.AbstractText,
			SourceURL: data.AbstractURL,
		}
	}

	for _, topic := range flattenTopics(data.RelatedTopics) {
		if limit > 0 && len(out.Items) == limit {
			break
		}
		out.Items = append(out.Items, domain.SearchResultItem{
			Title:     topicTitle(topic.Text),
			Snippet:   topic.Text,
			SourceURL: topic.FirstURL,
		})
	}
	return out, nil
}

func flattenTopics(topics []ddgTopic) []ddgTopic {
	flat := make([]ddgTopic, 0, len(topics))
	for _, t := range topics {
		if len(t.Topics) > 0 {
			for _, sub := range t.Topics {
				if sub.Text != "" {
					flat = append(flat, sub)
				}
			}
			continue
		}
		if t.Text != "" {
			flat = append(flat, t)
		}
	}
	return flat
}

// topicTitle uses the text before the first " - ", which is how the API
// separates the topic name from its description.
func topicTitle(text string) string {
	if title, _, ok := strings.Cut(text, " - "); ok {
		return title
	}
	return text
}
