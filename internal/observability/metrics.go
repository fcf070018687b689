package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hailsim", Name: "bookings_total",
		Help: "Total passenger bookings confirmed",
	})
	RidesCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hailsim", Name: "rides_completed_total",
		Help: "Total simulated rides driven to completion",
	})
	RidesCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hailsim", Name: "rides_cancelled_total",
		Help: "Total rides cancelled before completion",
	})
	RequestsAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hailsim", Name: "ride_requests_accepted_total",
		Help: "Total driver-side ride requests accepted",
	})
	RequestsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hailsim", Name: "ride_requests_rejected_total",
		Help: "Total driver-side ride requests rejected",
	})
	DriversOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "hailsim", Name: "drivers_online",
		Help: "Driver sessions currently online",
	})
)
