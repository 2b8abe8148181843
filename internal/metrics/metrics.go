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

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	BadgesGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBadgesGranted,
			Help: HelpTextBadgesGranted,
		},
		[]string{LabelBadge},
	)

	GrantRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGrantRejections,
			Help: HelpTextGrantRejections,
		},
		[]string{LabelReason},
	)

	XPAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
	)

	PointsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsAwarded,
			Help: HelpTextPointsAwarded,
		},
	)

	TournamentScores = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTournamentScores,
			Help: HelpTextTournamentScores,
		},
	)

	PrizesDistributed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePrizesDistributed,
			Help: HelpTextPrizesDistributed,
		},
	)

	PayoutDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePayoutDecisions,
			Help: HelpTextPayoutDecisions,
		},
		[]string{LabelOutcome},
	)

	PayoutRiskScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePayoutRiskScore,
			Help:    HelpTextPayoutRiskScore,
			Buckets: RiskScoreBuckets,
		},
	)

	PayoutFeePoints = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePayoutFeePoints,
			Help: HelpTextPayoutFeePoints,
		},
	)
)
