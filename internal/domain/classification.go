package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Confidence level buckets derived from the continuous score.
const (
	ConfidenceLevelHigh   = "high"
	ConfidenceLevelMedium = "medium"
	ConfidenceLevelLow    = "low"
)

// ClassificationMethod constants.
const (
	MethodKeywordTaxonomy = "keyword_taxonomy"
)

// PracticeAreas accepts either a single JSON string or a list of
// strings, which is how upstream classifiers report practice areas.
type PracticeAreas []string

// UnmarshalJSON handles both `"Family Law"` and `["Family Law", ...]`.
func (p *PracticeAreas) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*p = nil
		} else {
			*p = PracticeAreas{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("practice_area must be a string or list of strings: %w", err)
	}
	*p = PracticeAreas(many)
	return nil
}

// ExternalClassification is the upstream classifier's output for one
// content item. Every field is optional; missing fields are treated as
// absent evidence, never as an error.
type ExternalClassification struct {
	PracticeArea   PracticeAreas `json:"practice_area,omitempty"`
	TargetAudience string        `json:"target_audience,omitempty"`
	Topics         []string      `json:"topics,omitempty"`
	ContentType    string        `json:"content_type,omitempty"`
}

// FieldCompleteness returns how many of the expected fields are present
// and non-empty, out of the total expected.
func (e *ExternalClassification) FieldCompleteness() (present, total int) {
	total = 4
	if e == nil {
		return 0, total
	}
	if len(e.PracticeArea) > 0 {
		present++
	}
	if e.TargetAudience != "" {
		present++
	}
	if len(e.Topics) > 0 {
		present++
	}
	if e.ContentType != "" {
		present++
	}
	return present, total
}

// Evidence is the per-signal breakdown behind a confidence score,
// returned alongside the combined result for explainability.
type Evidence struct {
	KeywordMatchScore       float64 `json:"keyword_match_score"`
	SemanticSimilarityScore float64 `json:"semantic_similarity_score"`
	ContentSpecificityScore float64 `json:"content_specificity_score"`
	ResponseQualityScore    float64 `json:"response_quality_score"`
}

// ConfidenceResult combines the evidence signals into one score and a
// discrete level.
type ConfidenceResult struct {
	ConfidenceScore float64  `json:"confidence_score"`
	ConfidenceLevel string   `json:"confidence_level"`
	IsReliable      bool     `json:"is_reliable"`
	Evidence        Evidence `json:"evidence"`
}

// ContentItem is a single piece of content to classify, together with
// the upstream classifier's verdict when one is available.
type ContentItem struct {
	ID             string                  `json:"id"`
	Content        string                  `json:"content"`
	Classification *ExternalClassification `json:"classification,omitempty"`
}

// ClassificationResult is the full output for one content item. It is
// created once per request and never mutated afterwards.
type ClassificationResult struct {
	ContentItemID string `json:"content_item_id"`

	ExternalClassification *ExternalClassification `json:"external_classification,omitempty"`
	TaxonomyMapping        *MappingResult          `json:"taxonomy_mapping"`
	Confidence             *ConfidenceResult       `json:"confidence"`

	ClassifierVersion    string    `json:"classifier_version"`
	ClassificationMethod string    `json:"classification_method"`
	ProcessingTimeMs     int64     `json:"processing_time_ms"`
	ClassifiedAt         time.Time `json:"classified_at"`
}

// TopCategoryName returns the best-ranked parent category name, or ""
// when the mapping is empty.
func (r *ClassificationResult) TopCategoryName() string {
	if r.TaxonomyMapping == nil || len(r.TaxonomyMapping.ParentCategories) == 0 {
		return ""
	}
	return r.TaxonomyMapping.ParentCategories[0].Name
}
