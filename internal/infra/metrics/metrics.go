// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentence_generations_total",
			Help: "Generated sentences by provider and result (ok/fallback).",
		},
		[]string{"provider", "result"},
	)

	generationLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentence_generation_latency_ms",
			Help:    "Generation call latency distribution in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 4000, 8000, 15000},
		},
		[]string{"provider"},
	)

	selectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_selections_total",
			Help: "Sentence selections by outcome (sent/not_found/failed).",
		},
		[]string{"outcome"},
	)

	deliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_deliveries_total",
			Help: "Outbound messages by kind (quiz/reminder) and result (ok/error).",
		},
		[]string{"kind", "result"},
	)

	reminderFiringsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminder_firings_total",
			Help: "Scheduled reminder firings by result (sent/skipped/failed).",
		},
		[]string{"result"},
	)

	webhookUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_updates_total",
			Help: "Inbound webhook payloads by result (accepted/malformed/rejected).",
		},
		[]string{"result"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			generationsTotal, generationLatencyMs,
			selectionsTotal, deliveriesTotal,
			reminderFiringsTotal, webhookUpdatesTotal,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func ObserveGeneration(provider string, took time.Duration, fallback bool) {
	result := "ok"
	if fallback {
		result = "fallback"
	}
	generationsTotal.WithLabelValues(norm(provider), result).Inc()
	generationLatencyMs.WithLabelValues(norm(provider)).Observe(float64(took.Milliseconds()))
}

func IncSelection(outcome string) {
	selectionsTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncDelivery(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	deliveriesTotal.WithLabelValues(norm(kind), result).Inc()
}

func IncReminderFiring(result string) {
	reminderFiringsTotal.WithLabelValues(norm(result)).Inc()
}

func IncWebhookUpdate(result string) {
	webhookUpdatesTotal.WithLabelValues(norm(result)).Inc()
}
