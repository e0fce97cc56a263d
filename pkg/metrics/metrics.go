package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TranslationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "openmensa", Name: "translations_total", Help: "Number of feed translations by canteen and outcome."},
		[]string{"canteen", "outcome"},
	)
	TranslationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "openmensa", Name: "translation_duration_seconds", Help: "Duration of a full fetch+aggregate+build translation.", Buckets: prometheus.DefBuckets},
		[]string{"canteen"},
	)
	UnknownCodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "openmensa", Name: "unknown_codes_total", Help: "Number of unrecognized descriptive codes by kind."},
		[]string{"kind"},
	)
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "openmensa", Name: "http_requests_total", Help: "Number of HTTP requests by method, path and status code."},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "openmensa", Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "openmensa", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "openmensa", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(TranslationsTotal)
	reg.MustRegister(TranslationDuration)
	reg.MustRegister(UnknownCodes)
	reg.MustRegister(HTTPRequestsTotal)
	reg.MustRegister(HTTPRequestDuration)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
