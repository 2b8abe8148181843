package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameBadgesGranted     = "badges_granted_total"
	MetricNameGrantRejections   = "grant_rejections_total"
	MetricNameXPAwarded         = "xp_awarded_total"
	MetricNamePointsAwarded     = "points_awarded_total"
	MetricNameTournamentScores  = "tournament_scores_total"
	MetricNamePrizesDistributed = "prizes_distributed_total"
	MetricNamePayoutDecisions   = "payout_decisions_total"
	MetricNamePayoutRiskScore   = "payout_risk_score"
	MetricNamePayoutFeePoints   = "payout_fee_points_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextBadgesGranted     = "Total number of badge grants committed"
	HelpTextGrantRejections   = "Total number of negative grant evaluations by reason"
	HelpTextXPAwarded         = "Total XP credited by the engine"
	HelpTextPointsAwarded     = "Total points credited by the engine"
	HelpTextTournamentScores  = "Total number of tournament score recomputations"
	HelpTextPrizesDistributed = "Total number of tournament prize distributions"
	HelpTextPayoutDecisions   = "Total number of payout decisions by outcome"
	HelpTextPayoutRiskScore   = "Distribution of composite payout risk scores"
	HelpTextPayoutFeePoints   = "Total processing fees charged, in points"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelBadge   = "badge"
	LabelReason  = "reason"
	LabelOutcome = "outcome"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// RiskScoreBuckets spans the clamped [0,100] composite risk score range
var RiskScoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
