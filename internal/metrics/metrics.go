package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	bookingOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "booking_outcomes_total",
			Help:      "Booking requests by outcome.",
		},
		[]string{"outcome"},
	)

	signInFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotelier",
			Name:      "sign_in_failures_total",
			Help:      "Failed sign-in attempts.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingOutcomes, signInFailures)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncBooking records a booking outcome: created, approved, rejected, conflict.
func IncBooking(outcome string) {
	bookingOutcomes.WithLabelValues(outcome).Inc()
}

// IncSignInFailure records a failed sign-in attempt.
func IncSignInFailure() {
	signInFailures.Inc()
}
