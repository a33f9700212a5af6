// Package processor runs batches of classification requests through a
// bounded worker pool.
package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/casemark/taxonomy-mapper/internal/classifier"
	"github.com/casemark/taxonomy-mapper/internal/domain"
	"github.com/casemark/taxonomy-mapper/internal/logging"
)

const defaultConcurrency = 10

// Result holds the outcome of processing a single item. Exactly one of
// Classification or Err is set.
type Result struct {
	Item           *domain.ContentItem          `json:"-"`
	ContentItemID  string                       `json:"content_item_id"`
	Classification *domain.ClassificationResult `json:"classification,omitempty"`
	Err            error                        `json:"-"`
	Error          string                       `json:"error,omitempty"`
}

// BatchProcessor classifies content items in parallel using a worker
// pool, with an optional rate limiter applied per batch.
type BatchProcessor struct {
	classifier  *classifier.Classifier
	limiter     *RateLimiter
	concurrency int
	logger      logging.Logger
}

// NewBatchProcessor creates a batch processor. A nil limiter disables
// rate limiting.
func NewBatchProcessor(c *classifier.Classifier, limiter *RateLimiter, concurrency int, logger logging.Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &BatchProcessor{
		classifier:  c,
		limiter:     limiter,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Process classifies every item in the batch. Individual failures are
// captured per item; the batch itself only fails when the rate limiter
// or context aborts it.
func (b *BatchProcessor) Process(ctx context.Context, items []*domain.ContentItem) ([]*Result, error) {
	if len(items) == 0 {
		return []*Result{}, nil
	}

	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("batch rate limit: %w", err)
		}
	}

	b.logger.Info("starting batch classification",
		"batch_size", len(items),
		"concurrency", b.concurrency,
	)
	start := time.Now()

	jobs := make(chan *domain.ContentItem, len(items))
	results := make(chan *Result, len(items))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, jobs, results, &wg)
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	wg.Wait()
	close(results)

	out := make([]*Result, 0, len(items))
	success := 0
	for result := range results {
		if result.Err == nil {
			success++
		}
		out = append(out, result)
	}

	b.logger.Info("batch classification complete",
		"total", len(items),
		"success", success,
		"errors", len(out)-success,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

func (b *BatchProcessor) worker(ctx context.Context, jobs <-chan *domain.ContentItem, results chan<- *Result, wg *sync.WaitGroup) {
	defer wg.Done()

	for item := range jobs {
		select {
		case <-ctx.Done():
			results <- errResult(item, ctx.Err())
			continue
		default:
		}

		classification, err := b.classifier.Classify(ctx, item)
		if err != nil {
			b.logger.Error("failed to classify content item",
				"content_item_id", item.ID,
				"error", err,
			)
			results <- errResult(item, err)
			continue
		}
		results <- &Result{
			Item:           item,
			ContentItemID:  item.ID,
			Classification: classification,
		}
	}
}

func errResult(item *domain.ContentItem, err error) *Result {
	return &Result{
		Item:          item,
		ContentItemID: item.ID,
		Err:           err,
		Error:         err.Error(),
	}
}
