package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "checkout"

type PrometheusRecorder struct {
	counters  *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

// NewPrometheusRecorder creates the checkout collectors and registers them with reg
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	counters := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "checkout event counters",
		},
		[]string{"type", LabelKind, LabelOutcome},
	)

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "latency_seconds",
			Help:      "checkout task latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", LabelKind},
	)

	for _, c := range []prometheus.Collector{counters, histogram} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("error registering checkout metrics: [%w]", err)
		}
	}

	return &PrometheusRecorder{
		counters:  counters,
		histogram: histogram,
	}, nil
}

func (p *PrometheusRecorder) IncCounter(name string, labels map[string]string) {
	p.counters.With(prometheus.Labels{
		"type":       name,
		LabelKind:    labels[LabelKind],
		LabelOutcome: labels[LabelOutcome],
	}).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(name string, d time.Duration, labels map[string]string) {
	p.histogram.With(prometheus.Labels{
		"operation": name,
		LabelKind:   labels[LabelKind],
	}).Observe(d.Seconds())
}
