package seo

import (
	"context"
	"log"
)

// BatchProgress reports the state of a batch after each completed item.
type BatchProgress struct {
	Index   int    `json:"index"` // 0-based index of the item just completed
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
	Keyword string `json:"keyword"`

	Result *RankResult `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// CheckBatch checks keywords strictly sequentially against one target URL,
// pacing requests through the limiter. A failed item is recorded in its
// progress entry and the batch continues; only context cancellation stops it
// early. onProgress, when non-nil, runs after each item.
func (rc *RankChecker) CheckBatch(ctx context.Context, keywords []string, targetURL string, onProgress func(BatchProgress)) ([]*RankResult, error) {
	results := make([]*RankResult, 0, len(keywords))

	for i, keyword := range keywords {
		if err := rc.limiter.Wait(ctx); err != nil {
			return results, err
		}

		progress := BatchProgress{
			Index:   i,
			Total:   len(keywords),
			Percent: (i + 1) * 100 / len(keywords),
			Keyword: keyword,
		}

		result, err := rc.CheckRank(ctx, keyword, targetURL)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			log.Printf("⚠️ Rank check failed for %q: %v", keyword, err)
			progress.Error = err.Error()
		} else {
			progress.Result = result
			results = append(results, result)
		}

		if onProgress != nil {
			onProgress(progress)
		}
	}

	return results, nil
}
