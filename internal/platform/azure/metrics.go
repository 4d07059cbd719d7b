package azure

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metric result label values.
const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultError    = "error"
)

type apiMetrics struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

func newAPIMetrics(reg prometheus.Registerer) (*apiMetrics, error) {
	m := &apiMetrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "redisflow",
				Subsystem: "azure",
				Name:      "api_calls_total",
				Help:      "Total number of Azure Resource Manager calls by operation and result",
			},
			[]string{"operation", "result"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "redisflow",
				Subsystem: "azure",
				Name:      "api_latency_seconds",
				Help:      "Latency of Azure Resource Manager calls in seconds, including polling",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 14), // 100ms to ~27min
			},
			[]string{"operation"},
		),
	}

	var err error
	if m.calls, err = register(reg, m.calls); err != nil {
		return nil, err
	}
	if m.latency, err = register(reg, m.latency); err != nil {
		return nil, err
	}

	return m, nil
}

// register registers c with reg, reusing an identical collector that is
// already registered so several clients can share one registry.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("failed to register metrics: %w", err)
	}
	return c, nil
}

// observe records one API call. Use as: defer c.metrics.observe("op", time.Now(), &err).
func (m *apiMetrics) observe(operation string, start time.Time, errp *error) {
	result := resultSuccess
	if errp != nil && *errp != nil {
		result = resultError
		if IsNotFound(*errp) {
			result = resultNotFound
		}
	}
	m.calls.WithLabelValues(operation, result).Inc()
	m.latency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// APICallCount sums redisflow_azure_api_calls_total across all operations
// and results in g.
func APICallCount(g prometheus.Gatherer) (int, error) {
	families, err := g.Gather()
	if err != nil {
		return 0, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var total float64
	for _, mf := range families {
		if mf.GetName() != "redisflow_azure_api_calls_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return int(total), nil
}
