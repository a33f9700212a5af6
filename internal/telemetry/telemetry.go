// Package telemetry provides OpenTelemetry tracing and Prometheus
// metrics for the taxonomy-mapper service.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "taxonomy-mapper"

// Metrics holds all service Prometheus metrics.
type Metrics struct {
	ClassificationsTotal   *prometheus.CounterVec
	ClassificationDuration prometheus.Histogram
	ClassificationsFailed  *prometheus.CounterVec
	MappingCandidates      prometheus.Histogram
	BatchSize              prometheus.Histogram
	TaxonomyCategories     prometheus.Gauge
	HistoryWriteFailures   prometheus.Counter
}

// Provider wraps the tracer and metrics registry.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	return &Metrics{
		ClassificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxonomy_mapper_classifications_total",
			Help: "Total classifications by confidence level (high, medium, low)",
		}, []string{"confidence_level"}),

		ClassificationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "taxonomy_mapper_classification_duration_seconds",
			Help:    "Time to classify a single content item",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),

		ClassificationsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "taxonomy_mapper_classifications_failed_total",
			Help: "Total classifications that failed",
		}, []string{"error_code"}),

		MappingCandidates: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "taxonomy_mapper_mapping_candidates",
			Help:    "Categories flagged by the keyword automaton per request",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),

		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "taxonomy_mapper_batch_size",
			Help:    "Content items per batch request",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		}),

		TaxonomyCategories: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "taxonomy_mapper_taxonomy_categories",
			Help: "Number of categories in the loaded taxonomy",
		}),

		HistoryWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "taxonomy_mapper_history_write_failures_total",
			Help: "Classification history writes that failed",
		}),
	}
}

// RecordClassification records one completed classification.
func (p *Provider) RecordClassification(ctx context.Context, level string, duration time.Duration) {
	p.Metrics.ClassificationsTotal.WithLabelValues(level).Inc()
	p.Metrics.ClassificationDuration.Observe(duration.Seconds())
}

// RecordClassificationFailure records a failed classification.
func (p *Provider) RecordClassificationFailure(ctx context.Context, errorCode string) {
	p.Metrics.ClassificationsFailed.WithLabelValues(errorCode).Inc()
}

// RecordMappingCandidates records the automaton candidate count.
func (p *Provider) RecordMappingCandidates(ctx context.Context, count int) {
	p.Metrics.MappingCandidates.Observe(float64(count))
}

// RecordBatchSize records the size of a processed batch.
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// RecordHistoryWriteFailure records a failed history write.
func (p *Provider) RecordHistoryWriteFailure() {
	p.Metrics.HistoryWriteFailures.Inc()
}

// SetTaxonomySize publishes the loaded taxonomy size.
func (p *Provider) SetTaxonomySize(categories int) {
	p.Metrics.TaxonomyCategories.Set(float64(categories))
}

// StartSpan starts a new trace span. The caller must end it.
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
