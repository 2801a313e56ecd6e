package seo

import (
	"context"
	"errors"
	"testing"
)

type scriptedSearcher struct {
	byKeyword map[string]*SearchResponse
	failing   map[string]error
	order     []string
}

func (s *scriptedSearcher) Search(ctx context.Context, keyword string) (*SearchResponse, error) {
	s.order = append(s.order, keyword)
	if err, ok := s.failing[keyword]; ok {
		return nil, err
	}
	return s.byKeyword[keyword], nil
}

func TestCheckBatchProcessesInOrder(t *testing.T) {
	search := &scriptedSearcher{
		byKeyword: map[string]*SearchResponse{
			"location chaises":  resultsWith("https://festiloc.fr"),
			"location tables":   resultsWith("https://autre.fr", "https://festiloc.fr"),
			"location vaisselle": resultsWith("https://autre.fr"),
		},
	}
	rc := newTestChecker(search)

	var progress []BatchProgress
	keywords := []string{"location chaises", "location tables", "location vaisselle"}
	results, err := rc.CheckBatch(context.Background(), keywords, "festiloc.fr", func(p BatchProgress) {
		progress = append(progress, p)
	})
	if err != nil {
		t.Fatalf("CheckBatch failed: %v", err)
	}

	// Items are checked strictly sequentially, one retry scope per keyword.
	for i, kw := range keywords {
		if search.order[i] != kw {
			t.Errorf("search order[%d] = %q, want %q", i, search.order[i], kw)
		}
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Position != 1 || results[1].Position != 2 || results[2].Position != 0 {
		t.Errorf("positions = %d, %d, %d, want 1, 2, 0",
			results[0].Position, results[1].Position, results[2].Position)
	}

	wantPercent := []int{33, 66, 100}
	if len(progress) != 3 {
		t.Fatalf("got %d progress events, want 3", len(progress))
	}
	for i, p := range progress {
		if p.Percent != wantPercent[i] {
			t.Errorf("progress[%d].Percent = %d, want %d", i, p.Percent, wantPercent[i])
		}
		if p.Index != i || p.Total != 3 {
			t.Errorf("progress[%d] = index %d total %d, want index %d total 3", i, p.Index, p.Total, i)
		}
	}
}

func TestCheckBatchContinuesAfterItemFailure(t *testing.T) {
	search := &scriptedSearcher{
		byKeyword: map[string]*SearchResponse{
			"ok-before": resultsWith("https://festiloc.fr"),
			"ok-after":  resultsWith("https://festiloc.fr"),
		},
		failing: map[string]error{"broken": errors.New("connection refused")},
	}
	rc := newTestChecker(search)

	var progress []BatchProgress
	results, err := rc.CheckBatch(context.Background(),
		[]string{"ok-before", "broken", "ok-after"}, "festiloc.fr",
		func(p BatchProgress) { progress = append(progress, p) })
	if err != nil {
		t.Fatalf("an item failure must not abort the batch: %v", err)
	}

	if len(results) != 2 {
		t.Errorf("got %d results, want 2 (failed item skipped)", len(results))
	}
	if len(progress) != 3 {
		t.Fatalf("got %d progress events, want 3 (failed item still reported)", len(progress))
	}
	if progress[1].Error == "" || progress[1].Result != nil {
		t.Errorf("failed item progress = %+v, want error set and no result", progress[1])
	}
	if progress[2].Percent != 100 {
		t.Errorf("final percent = %d, want 100", progress[2].Percent)
	}
}

func TestCheckBatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	search := &scriptedSearcher{
		byKeyword: map[string]*SearchResponse{"first": resultsWith("https://festiloc.fr")},
	}
	rc := newTestChecker(search)

	results, err := rc.CheckBatch(ctx, []string{"first", "second", "third"}, "festiloc.fr",
		func(p BatchProgress) {
			if p.Index == 0 {
				cancel()
			}
		})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results before cancellation, want 1", len(results))
	}
}
