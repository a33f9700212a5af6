// Package confidence combines independent evidence signals about a
// classification into one confidence score and a discrete level.
package confidence

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/casemark/taxonomy-mapper/internal/domain"
	"github.com/casemark/taxonomy-mapper/internal/logging"
)

// Thresholds and weighting for the combined score.
const (
	// ReliableThreshold is both the medium-level cutoff and the
	// reliability bar: medium and high are reliable, low is not.
	ReliableThreshold = 0.15
	// HighThreshold marks the high confidence level.
	HighThreshold = 0.7

	// specificityCap is the content length (in runes) at which the
	// length-based specificity signal saturates.
	specificityCap = 5000

	// sigmoidSteepness sharpens the weighted average around the
	// midpoint, pulling mid-range scores toward the extremes.
	sigmoidSteepness = 5.0
	sigmoidMidpoint  = 0.5
)

// defaultWeights order the evidence signals: keyword match, semantic
// similarity, content specificity, response quality. Keyword match and
// semantic similarity dominate.
var defaultWeights = []float64{0.4, 0.3, 0.1, 0.2}

// Scorer computes classification confidence from a taxonomy mapping
// and an upstream classifier's output.
type Scorer struct {
	logger logging.Logger
}

// NewScorer creates a confidence scorer.
func NewScorer(logger logging.Logger) *Scorer {
	return &Scorer{logger: logger}
}

// SemanticSimilarity is the Jaccard similarity between the practice
// areas asserted by the external classifier and the parent category
// names in the taxonomy mapping, both lower-cased. Either side being
// empty yields 0.
func (s *Scorer) SemanticSimilarity(external *domain.ExternalClassification, mapping *domain.MappingResult) float64 {
	modelAreas := make(map[string]struct{})
	if external != nil {
		for _, area := range external.PracticeArea {
			modelAreas[strings.ToLower(area)] = struct{}{}
		}
	}

	taxonomyAreas := make(map[string]struct{})
	if mapping != nil {
		for _, name := range mapping.ParentNames() {
			taxonomyAreas[strings.ToLower(name)] = struct{}{}
		}
	}

	if len(modelAreas) == 0 || len(taxonomyAreas) == 0 {
		return 0
	}

	intersection := 0
	for area := range modelAreas {
		if _, ok := taxonomyAreas[area]; ok {
			intersection++
		}
	}
	union := len(modelAreas) + len(taxonomyAreas) - intersection
	return float64(intersection) / float64(union)
}

// CombineEvidence reduces evidence scores to a single confidence value:
// a weight-normalized average passed through a sigmoid and clamped to
// [0,1]. An empty score list or a zero weight sum returns 0 rather than
// dividing by zero. A nil weight slice means equal weights.
func CombineEvidence(scores, weights []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	if weights == nil {
		weights = make([]float64, len(scores))
		for i := range weights {
			weights[i] = 1
		}
	}

	weightSum := 0.0
	for _, w := range weights {
		weightSum += w
	}
	if weightSum == 0 {
		return 0
	}

	weighted := 0.0
	for i, score := range scores {
		if i >= len(weights) {
			break
		}
		weighted += score * (weights[i] / weightSum)
	}

	confidence := 1 / (1 + math.Exp(-sigmoidSteepness*(weighted-sigmoidMidpoint)))
	return math.Min(1, math.Max(0, confidence))
}

// Level buckets a confidence score into high, medium or low.
func Level(confidence float64) string {
	switch {
	case confidence >= HighThreshold:
		return domain.ConfidenceLevelHigh
	case confidence >= ReliableThreshold:
		return domain.ConfidenceLevelMedium
	default:
		return domain.ConfidenceLevelLow
	}
}

// ScoreClassificationConfidence computes the four evidence signals and
// combines them into a ConfidenceResult. Malformed or missing external
// classification fields contribute zero evidence, never an error.
func (s *Scorer) ScoreClassificationConfidence(
	content string,
	external *domain.ExternalClassification,
	mapping *domain.MappingResult,
) *domain.ConfidenceResult {
	keywordScore := 0.0
	if mapping != nil {
		keywordScore = mapping.TopParentScore()
	}

	semanticScore := s.SemanticSimilarity(external, mapping)

	specificity := math.Min(1, float64(utf8.RuneCountInString(content))/specificityCap)

	present, total := external.FieldCompleteness()
	responseQuality := float64(present) / float64(total)

	evidence := domain.Evidence{
		KeywordMatchScore:       keywordScore,
		SemanticSimilarityScore: semanticScore,
		ContentSpecificityScore: specificity,
		ResponseQualityScore:    responseQuality,
	}

	confidence := CombineEvidence(
		[]float64{keywordScore, semanticScore, specificity, responseQuality},
		defaultWeights,
	)

	result := &domain.ConfidenceResult{
		ConfidenceScore: confidence,
		ConfidenceLevel: Level(confidence),
		IsReliable:      confidence >= ReliableThreshold,
		Evidence:        evidence,
	}

	s.logger.Debug("confidence scored",
		"confidence", confidence,
		"level", result.ConfidenceLevel,
		"keyword_match", keywordScore,
		"semantic_similarity", semanticScore,
	)
	return result
}
