package seo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/festiloc/festiloc-server/internal/utils"
)

// Searcher abstracts the external search API for testing.
type Searcher interface {
	Search(ctx context.Context, keyword string) (*SearchResponse, error)
}

// RankResult is the outcome of a single rank check.
type RankResult struct {
	Keyword string `json:"keyword"`
	URL     string `json:"url"`
	Domain  string `json:"domain"`

	// Position is 1-based. 0 means the domain was not found within the
	// checked window. MaxResults+1 is a sentinel: metadata indicated more
	// results exist beyond the window and the domain was not in it.
	Position int `json:"position"`

	// IsRealResult is false only for the sentinel position.
	IsRealResult bool `json:"isRealResult"`

	TotalResults int64     `json:"totalResults"`
	ElapsedSecs  float64   `json:"elapsedSecs"`
	CheckedAt    time.Time `json:"checkedAt"`
}

// RankError carries the classification of a failed check.
type RankError struct {
	Kind FailureKind
	Err  error
}

func (e *RankError) Error() string {
	return fmt.Sprintf("rank check failed (%s): %v", e.Kind, e.Err)
}

func (e *RankError) Unwrap() error { return e.Err }

// RankChecker runs keyword rank checks against a search API with retry and
// request pacing.
type RankChecker struct {
	search  Searcher
	retry   utils.RetryConfig
	limiter *rate.Limiter
}

// NewRankChecker creates a checker. The limiter spaces outbound requests in
// batch mode to respect the search API rate limits.
func NewRankChecker(search Searcher) *RankChecker {
	return &RankChecker{
		search:  search,
		retry:   utils.DefaultRetry,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// ExtractDomain reduces a site URL to its bare domain: scheme, leading
// "www." and any path are stripped.
func ExtractDomain(raw string) string {
	domain := strings.TrimSpace(raw)
	for _, prefix := range []string{"https://", "http://"} {
		domain = strings.TrimPrefix(domain, prefix)
	}
	domain = strings.TrimPrefix(domain, "www.")
	if idx := strings.IndexAny(domain, "/?#"); idx >= 0 {
		domain = domain[:idx]
	}
	return strings.ToLower(domain)
}

// CheckRank determines the position of targetURL's domain for a keyword.
// Transport and non-2xx failures are retried with capped exponential backoff
// before a classified error is surfaced. A well-formed response with zero
// organic results is a success with position 0.
func (rc *RankChecker) CheckRank(ctx context.Context, keyword, targetURL string) (*RankResult, error) {
	domain := ExtractDomain(targetURL)
	if domain == "" {
		return nil, fmt.Errorf("cannot extract a domain from %q", targetURL)
	}

	var resp *SearchResponse
	err := utils.Retry(ctx, rc.retry, func() error {
		var searchErr error
		resp, searchErr = rc.search.Search(ctx, keyword)
		return searchErr
	})
	if err != nil {
		return nil, &RankError{Kind: ClassifyFailure(err), Err: err}
	}

	result := &RankResult{
		Keyword:      keyword,
		URL:          targetURL,
		Domain:       domain,
		IsRealResult: true,
		TotalResults: resp.SearchInformation.TotalResults,
		ElapsedSecs:  resp.SearchInformation.TimeTaken,
		CheckedAt:    time.Now(),
	}

	for i, organic := range resp.Organic {
		if strings.Contains(strings.ToLower(organic.Link), domain) {
			result.Position = i + 1
			return result, nil
		}
	}

	// Not found in the fetched window. When metadata says the result set
	// extends beyond it, report the sentinel instead of "not found" -
	// existing behavior kept as-is, see KeywordRanking docs.
	if len(resp.Organic) > 0 && resp.SearchInformation.TotalResults > int64(len(resp.Organic)) {
		result.Position = MaxResults + 1
		result.IsRealResult = false
	}

	return result, nil
}
