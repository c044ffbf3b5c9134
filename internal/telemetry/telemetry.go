// Package telemetry provides OpenTelemetry instrumentation for the resolver
// service. It exports Prometheus metrics and provides tracing capabilities.
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

const serviceName = "resolver"

// Outcome labels for the pipeline counter.
const (
	OutcomeRegistered = "registered"
	OutcomeRejected   = "rejected"
	OutcomeDuplicate  = "duplicate"
	OutcomeFailed     = "failed"
)

// Metrics holds all resolver Prometheus metrics
type Metrics struct {
	// Pipeline metrics
	ComplaintsProcessed *prometheus.CounterVec
	PipelineDuration    *prometheus.HistogramVec
	BatchSize           prometheus.Histogram

	// Classification metrics
	ClassificationTotal *prometheus.CounterVec
	KeywordScore        prometheus.Histogram

	// Location metrics
	GeocodeTotal   *prometheus.CounterVec
	LocalitySource *prometheus.CounterVec

	// Notification metrics
	NotificationsTotal *prometheus.CounterVec
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initPipelineMetrics(m)
	initClassificationMetrics(m)
	initLocationMetrics(m)
	initNotificationMetrics(m)
	return m
}

func initPipelineMetrics(m *Metrics) {
	m.ComplaintsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_complaints_processed_total",
		Help: "Total posts run through the pipeline by outcome (registered, rejected, duplicate, failed)",
	}, []string{"outcome"})

	m.PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resolver_pipeline_duration_seconds",
		Help:    "Time spent in each pipeline stage",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"stage"})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resolver_batch_size",
		Help:    "Number of posts per batch run",
		Buckets: []float64{1, 5, 10, 25, 50, 100},
	})
}

func initClassificationMetrics(m *Metrics) {
	m.ClassificationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_classification_total",
		Help: "Total classifications by department and urgency",
	}, []string{"department", "urgency"})

	m.KeywordScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "resolver_keyword_score",
		Help:    "Winning department keyword score per civic post",
		Buckets: []float64{1, 2, 3, 4, 6, 8, 12, 20},
	})
}

func initLocationMetrics(m *Metrics) {
	m.GeocodeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_geocode_total",
		Help: "Geocode lookups by result (hit, miss, error)",
	}, []string{"result"})

	m.LocalitySource = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_locality_source_total",
		Help: "How the locality was resolved (gazetteer, pattern, fallback)",
	}, []string{"source"})
}

func initNotificationMetrics(m *Metrics) {
	m.NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resolver_notifications_total",
		Help: "Notification attempts by channel and status",
	}, []string{"channel", "status"})
}

// RecordOutcome records the final disposition of one pipeline run
func (p *Provider) RecordOutcome(ctx context.Context, outcome string, duration time.Duration) {
	p.Metrics.ComplaintsProcessed.WithLabelValues(outcome).Inc()
	p.Metrics.PipelineDuration.WithLabelValues("total").Observe(duration.Seconds())
}

// RecordStage records time spent in one pipeline stage
func (p *Provider) RecordStage(ctx context.Context, stage string, duration time.Duration) {
	p.Metrics.PipelineDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordClassification records department/urgency distribution and score
func (p *Provider) RecordClassification(ctx context.Context, department, urgency string, score int) {
	p.Metrics.ClassificationTotal.WithLabelValues(department, urgency).Inc()
	p.Metrics.KeywordScore.Observe(float64(score))
}

// RecordGeocode records a geocode lookup result (hit, miss, error)
func (p *Provider) RecordGeocode(ctx context.Context, result string) {
	p.Metrics.GeocodeTotal.WithLabelValues(result).Inc()
}

// RecordLocalitySource records how the locality name was obtained
func (p *Provider) RecordLocalitySource(ctx context.Context, source string) {
	p.Metrics.LocalitySource.WithLabelValues(source).Inc()
}

// RecordNotification records one channel attempt
func (p *Provider) RecordNotification(ctx context.Context, channel string, sent bool) {
	status := "failed"
	if sent {
		status = "sent"
	}
	p.Metrics.NotificationsTotal.WithLabelValues(channel, status).Inc()
}

// RecordBatchSize records the size of a processed batch
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
