package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"taleweaver/internal/model"
)

const (
	kindChapter = "chapter"
	kindDetails = "details"

	statusSuccess = "success"
	statusError   = "error"
)

var (
	generationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taleweaver_generation_requests_total",
			Help: "Total number of generation backend calls by kind and status.",
		},
		[]string{"kind", "status"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taleweaver_generation_duration_seconds",
			Help:    "Latency of generation backend calls.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"kind"},
	)

	generationTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taleweaver_generation_tokens",
			Help:    "Token usage per generation call by kind and token type.",
			Buckets: prometheus.ExponentialBuckets(64, 2, 8),
		},
		[]string{"kind", "type"},
	)
)

func observeUsage(kind string, usage *model.TokenUsage) {
	if usage == nil {
		return
	}
	generationTokens.WithLabelValues(kind, "prompt").Observe(float64(usage.PromptTokens))
	generationTokens.WithLabelValues(kind, "completion").Observe(float64(usage.CompletionTokens))
}
