package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "barber_booking"

var (
	// Admissions counts booking attempts by outcome (created, conflict,
	// slot_unavailable, insufficient_points, validation, error).
	Admissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admissions_total",
		Help:      "Booking admission attempts by outcome.",
	}, []string{"outcome"})

	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Booking state transitions by target status and outcome.",
	}, []string{"status", "outcome"})

	LoyaltyPoints = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loyalty_points_total",
		Help:      "Loyalty points moved by operation.",
	}, []string{"operation"})

	SlotQueries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slot_queries_total",
		Help:      "Available slot resolutions served.",
	})
)
