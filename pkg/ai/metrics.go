package ai

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	providerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "writerpro",
		Subsystem: "ai",
		Name:      "generate_duration_seconds",
		Help:      "Duration of scoring provider requests",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"provider", "model"})

	providerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "writerpro",
		Subsystem: "ai",
		Name:      "generate_failures_total",
		Help:      "Number of scoring provider failures",
	}, []string{"provider", "model"})
)

func observeDuration(provider, model string, duration time.Duration) {
	providerDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
}

func recordFailure(span trace.Span, provider, model string, err error) {
	providerFailures.WithLabelValues(provider, model).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
