// Package metrics defines and registers the custom Prometheus metrics for
// the quiz platform. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quizmesh"

// TokensIssuedTotal counts issued tokens.
// Labels:
//   - kind: "access" or "refresh"
//   - flow: "register", "login", or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of identity tokens issued, by kind and flow.",
	},
	[]string{"kind", "flow"},
)

// AuthFailuresTotal counts requests rejected by the verification filter.
// Label:
//   - reason: "expired", "signature", or "malformed"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of bearer tokens rejected during verification.",
	},
	[]string{"reason"},
)

// ProviderRequestsTotal counts calls to the question provider.
// Labels:
//   - operation: "generate", "get_questions", or "score"
//   - outcome: "ok" or "error"
var ProviderRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Total number of question provider calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ProviderRequestDuration measures question provider call latency.
var ProviderRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of question provider calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// QuizzesCreatedTotal counts created quizzes by category.
var QuizzesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quizzes_created_total",
		Help:      "Total number of quizzes created, by category.",
	},
	[]string{"category"},
)

// QuizSubmissionsTotal counts scored quiz submissions.
var QuizSubmissionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quiz_submissions_total",
		Help:      "Total number of quiz submissions scored.",
	},
)
