// Package classifier orchestrates the taxonomy mapping and confidence
// scoring stages into a single classification pipeline.
package classifier

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/casemark/taxonomy-mapper/internal/confidence"
	"github.com/casemark/taxonomy-mapper/internal/domain"
	"github.com/casemark/taxonomy-mapper/internal/logging"
	"github.com/casemark/taxonomy-mapper/internal/mapper"
	"github.com/casemark/taxonomy-mapper/internal/telemetry"
)

// Classifier runs the full pipeline for one content item: taxonomy
// mapping, then confidence scoring against the upstream classification.
type Classifier struct {
	mapper     *mapper.Mapper
	confidence *confidence.Scorer
	telemetry  *telemetry.Provider
	logger     logging.Logger
	version    string
}

// Config holds classifier configuration.
type Config struct {
	Version string
}

// New creates a classifier. The telemetry provider may be nil.
func New(
	m *mapper.Mapper,
	scorer *confidence.Scorer,
	tp *telemetry.Provider,
	logger logging.Logger,
	cfg Config,
) *Classifier {
	return &Classifier{
		mapper:     m,
		confidence: scorer,
		telemetry:  tp,
		logger:     logger,
		version:    cfg.Version,
	}
}

// Classify maps the item's content onto the taxonomy and scores the
// classification confidence. The only error condition is a cancelled
// context; empty content and missing external classifications degrade
// to zero-evidence results instead of failing.
func (c *Classifier) Classify(ctx context.Context, item *domain.ContentItem) (*domain.ClassificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("classification aborted: %w", err)
	}

	if c.telemetry != nil {
		var span trace.Span
		ctx, span = c.telemetry.StartSpan(ctx, "classifier.Classify",
			attribute.String("content_item_id", item.ID))
		defer span.End()
	}

	start := time.Now()

	c.logger.Debug("starting classification",
		"content_item_id", item.ID,
		"content_length", len(item.Content),
	)

	mapping := c.mapper.MapToTaxonomy(item.Content)
	conf := c.confidence.ScoreClassificationConfidence(item.Content, item.Classification, mapping)

	result := &domain.ClassificationResult{
		ContentItemID:          item.ID,
		ExternalClassification: item.Classification,
		TaxonomyMapping:        mapping,
		Confidence:             conf,
		ClassifierVersion:      c.version,
		ClassificationMethod:   domain.MethodKeywordTaxonomy,
		ProcessingTimeMs:       time.Since(start).Milliseconds(),
		ClassifiedAt:           time.Now(),
	}

	if c.telemetry != nil {
		c.telemetry.RecordClassification(ctx, conf.ConfidenceLevel, time.Since(start))
		c.telemetry.RecordMappingCandidates(ctx, c.mapper.CandidateCount(item.Content))
	}

	c.logger.Info("classification complete",
		"content_item_id", item.ID,
		"top_category", result.TopCategoryName(),
		"confidence", conf.ConfidenceScore,
		"confidence_level", conf.ConfidenceLevel,
		"processing_time_ms", result.ProcessingTimeMs,
	)
	return result, nil
}

// Version returns the classifier version string.
func (c *Classifier) Version() string {
	return c.version
}
