package seo

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/festiloc/festiloc-server/internal/utils"
)

type fakeSearcher struct {
	responses []*SearchResponse
	errs      []error
	calls     int
}

func (f *fakeSearcher) Search(ctx context.Context, keyword string) (*SearchResponse, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], f.errs[i]
}

func newTestChecker(search Searcher) *RankChecker {
	rc := NewRankChecker(search)
	rc.retry = utils.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	rc.limiter = rate.NewLimiter(rate.Inf, 1)
	return rc
}

func resultsWith(links ...string) *SearchResponse {
	resp := &SearchResponse{}
	for i, link := range links {
		resp.Organic = append(resp.Organic, OrganicResult{Position: i + 1, Link: link})
	}
	resp.SearchInformation.TotalResults = int64(len(links))
	return resp
}

func TestExtractDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.festiloc.fr":          "festiloc.fr",
		"http://festiloc.fr/catalogue":     "festiloc.fr",
		"https://festiloc.fr?utm_source=x": "festiloc.fr",
		"www.festiloc.fr":                  "festiloc.fr",
		"festiloc.fr":                      "festiloc.fr",
	}

	for input, want := range cases {
		if got := ExtractDomain(input); got != want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCheckRankFindsDomain(t *testing.T) {
	search := &fakeSearcher{
		responses: []*SearchResponse{resultsWith(
			"https://concurrent-a.fr/location",
			"https://www.festiloc.fr/catalogue/chaises",
			"https://concurrent-b.fr",
		)},
		errs: []error{nil},
	}
	rc := newTestChecker(search)

	result, err := rc.CheckRank(context.Background(), "location chaises", "https://www.festiloc.fr")
	if err != nil {
		t.Fatalf("CheckRank failed: %v", err)
	}
	if result.Position != 2 {
		t.Errorf("Position = %d, want 2 (1-based index of the match)", result.Position)
	}
	if !result.IsRealResult {
		t.Error("IsRealResult must be true for a direct match")
	}
	if result.Domain != "festiloc.fr" {
		t.Errorf("Domain = %q, want festiloc.fr", result.Domain)
	}
}

func TestCheckRankZeroOrganicResultsIsSuccess(t *testing.T) {
	resp := &SearchResponse{}
	resp.SearchInformation.TotalResults = 0

	search := &fakeSearcher{responses: []*SearchResponse{resp}, errs: []error{nil}}
	rc := newTestChecker(search)

	result, err := rc.CheckRank(context.Background(), "niche keyword", "festiloc.fr")
	if err != nil {
		t.Fatalf("zero organic results must not be an error, got %v", err)
	}
	if result.Position != 0 {
		t.Errorf("Position = %d, want 0", result.Position)
	}
	if !result.IsRealResult {
		t.Error("IsRealResult must be true for an empty but well-formed response")
	}
	if search.calls != 1 {
		t.Errorf("search called %d times, want 1 (no retry on success)", search.calls)
	}
}

func TestCheckRankBeyondWindowSentinel(t *testing.T) {
	resp := resultsWith("https://a.fr", "https://b.fr", "https://c.fr")
	resp.SearchInformation.TotalResults = 1_500_000

	search := &fakeSearcher{responses: []*SearchResponse{resp}, errs: []error{nil}}
	rc := newTestChecker(search)

	result, err := rc.CheckRank(context.Background(), "location mobilier", "festiloc.fr")
	if err != nil {
		t.Fatalf("CheckRank failed: %v", err)
	}
	if result.Position != MaxResults+1 {
		t.Errorf("Position = %d, want sentinel %d", result.Position, MaxResults+1)
	}
	if result.IsRealResult {
		t.Error("sentinel position must not be flagged as a real result")
	}
}

func TestCheckRankRetriesThenSucceeds(t *testing.T) {
	match := resultsWith("https://festiloc.fr")
	search := &fakeSearcher{
		responses: []*SearchResponse{nil, nil, match},
		errs:      []error{errors.New("connection refused"), errors.New("connection refused"), nil},
	}
	rc := newTestChecker(search)

	result, err := rc.CheckRank(context.Background(), "kw", "festiloc.fr")
	if err != nil {
		t.Fatalf("CheckRank failed after retries: %v", err)
	}
	if search.calls != 3 {
		t.Errorf("search called %d times, want 3", search.calls)
	}
	if result.Position != 1 {
		t.Errorf("Position = %d, want 1", result.Position)
	}
}

func TestCheckRankClassifiesFatalFailure(t *testing.T) {
	search := &fakeSearcher{
		responses: []*SearchResponse{nil},
		errs:      []error{errors.New("context deadline exceeded")},
	}
	rc := newTestChecker(search)

	_, err := rc.CheckRank(context.Background(), "kw", "festiloc.fr")
	if err == nil {
		t.Fatal("expected a fatal failure")
	}
	if search.calls != 3 {
		t.Errorf("search called %d times, want 3 (retries exhausted)", search.calls)
	}

	var rankErr *RankError
	if !errors.As(err, &rankErr) {
		t.Fatalf("error %T is not a *RankError", err)
	}
	if rankErr.Kind != FailureTimeout {
		t.Errorf("Kind = %s, want %s", rankErr.Kind, FailureTimeout)
	}
}

func TestCheckRankRejectsEmptyDomain(t *testing.T) {
	rc := newTestChecker(&fakeSearcher{responses: []*SearchResponse{nil}, errs: []error{nil}})
	if _, err := rc.CheckRank(context.Background(), "kw", "https://"); err == nil {
		t.Error("expected an error for an empty domain")
	}
}

func TestClassifyFailure(t *testing.T) {
	cases := map[string]FailureKind{
		"dial tcp: connection refused":         FailureConnectivity,
		"no such host":                         FailureConnectivity,
		"context deadline exceeded":            FailureTimeout,
		"Client.Timeout exceeded":              FailureTimeout,
		"search API quota exceeded (status 429)": FailureQuota,
		"proxyconnect tcp: EOF":                FailureProxy,
		"CORS preflight rejected":              FailureProxy,
	}
	for msg, want := range cases {
		if got := ClassifyFailure(errors.New(msg)); got != want {
			t.Errorf("ClassifyFailure(%q) = %s, want %s", msg, got, want)
		}
	}
}
