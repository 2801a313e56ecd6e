package seo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/festiloc/festiloc-server/internal/config"
)

// MaxResults is the size of the organic-result window requested per check.
// Positions beyond it are reported with the MaxResults+1 sentinel.
const MaxResults = 100

// OrganicResult is one non-paid entry of a search result page.
type OrganicResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
}

// SearchResponse is the subset of the search API payload the checker uses.
type SearchResponse struct {
	Organic           []OrganicResult `json:"organic_results"`
	SearchInformation struct {
		TotalResults int64   `json:"total_results"`
		TimeTaken    float64 `json:"time_taken_displayed"`
	} `json:"search_information"`
}

// SerpClient queries the external search API for organic results.
type SerpClient struct {
	cfg  config.SerpConfig
	http *http.Client
}

// NewSerpClient creates a search API client with a bounded request timeout.
func NewSerpClient(cfg config.SerpConfig) *SerpClient {
	return &SerpClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search fetches up to MaxResults organic results for a keyword.
func (c *SerpClient) Search(ctx context.Context, keyword string) (*SearchResponse, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("search API key is not configured")
	}

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("engine", c.cfg.Engine)
	params.Set("gl", c.cfg.Country)
	params.Set("hl", c.cfg.Lang)
	params.Set("num", strconv.Itoa(MaxResults))
	params.Set("api_key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("search API quota exceeded (status 429)")
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("search API server error (status %d)", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed SearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &parsed, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
