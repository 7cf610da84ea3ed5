// Package metrics provides the centralized Prometheus metrics registry for PickScout.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pickscout"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of API requests served",
	}, []string{"route", "status"})
	FeedCacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_cache_lookups_total",
		Help:      "Feed cache lookups by result",
	}, []string{"result"})
	FeedFetchFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_fetch_failures_total",
		Help:      "Failed feed fetches by view",
	}, []string{"view"})
	StaleResponsesDiscardedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_responses_discarded_total",
		Help:      "Dashboard responses dropped because a newer request was issued",
	}, []string{"view"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of feed client circuit breaker trips",
	})
	ProfilesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profiles_created_total",
		Help:      "Total number of user profiles saved",
	})
)

// Gauge metrics
var (
	LeaderboardCappers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "leaderboard_cappers",
		Help:      "Number of cappers on the most recently applied leaderboard",
	})
	TodaysPicks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "todays_picks",
		Help:      "Number of picks on the most recently applied today view",
	})
)

// Histogram metrics
var (
	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	FeedFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "feed_fetch_duration_seconds",
		Help:      "Duration of upstream feed fetches in seconds",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"view"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(APIRequestsTotal)
		registry.MustRegister(FeedCacheLookupsTotal)
		registry.MustRegister(FeedFetchFailuresTotal)
		registry.MustRegister(StaleResponsesDiscardedTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(ProfilesCreatedTotal)

		registry.MustRegister(LeaderboardCappers)
		registry.MustRegister(TodaysPicks)

		registry.MustRegister(APIRequestDuration)
		registry.MustRegister(FeedFetchDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAPIRequest records a served API request.
func RecordAPIRequest(route string, status int, durationSeconds float64) {
	APIRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordFeedCacheLookup records a feed cache hit or miss.
func RecordFeedCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	FeedCacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordFeedFetch records the outcome of an upstream fetch for view.
func RecordFeedFetch(view string, durationSeconds float64, failed bool) {
	FeedFetchDuration.WithLabelValues(view).Observe(durationSeconds)
	if failed {
		FeedFetchFailuresTotal.WithLabelValues(view).Inc()
	}
}

// RecordStaleResponse records a dashboard response that arrived after a newer request.
func RecordStaleResponse(view string) {
	StaleResponsesDiscardedTotal.WithLabelValues(view).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// RecordProfileCreated records a saved user profile.
func RecordProfileCreated() {
	ProfilesCreatedTotal.Inc()
}

// UpdateLeaderboardSize sets the leaderboard gauge.
func UpdateLeaderboardSize(count int) {
	LeaderboardCappers.Set(float64(count))
}

// UpdateTodaysPicks sets the today view gauge.
func UpdateTodaysPicks(count int) {
	TodaysPicks.Set(float64(count))
}
