package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	APIRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAPIRejections,
			Help: HelpTextAPIRejections,
		},
		[]string{LabelReason},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Discord Metrics
var (
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInteractionsTotal,
			Help: HelpTextInteractionsTotal,
		},
		[]string{LabelType, LabelCommand, LabelOutcome},
	)

	InteractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameInteractionDuration,
			Help:    HelpTextInteractionDuration,
			Buckets: InteractionLatencyBuckets,
		},
		[]string{LabelType, LabelCommand},
	)
)

// Regear Metrics
var (
	RegearTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRegearTransitions,
			Help: HelpTextRegearTransitions,
		},
		[]string{LabelStatus},
	)

	RegearItemsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRegearItemsIssued,
			Help: HelpTextRegearItemsIssued,
		},
		[]string{LabelSlot, LabelTier},
	)

	RegearRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRegearRejections,
			Help: HelpTextRegearRejections,
		},
		[]string{LabelEvent, LabelReason},
	)

	SurfaceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSurfaceFailures,
			Help: HelpTextSurfaceFailures,
		},
		[]string{LabelSurface, LabelOperation},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheLookups,
			Help: HelpTextCacheLookups,
		},
		[]string{LabelCache, LabelResult},
	)

	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobRuns,
			Help: HelpTextJobRuns,
		},
		[]string{LabelJob, LabelOutcome},
	)
)
