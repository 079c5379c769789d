package marketing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for pipeline activity. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	stageDuration *prometheus.HistogramVec
	campaigns     *prometheus.CounterVec
	toolCalls     *prometheus.CounterVec
	active        prometheus.Gauge
}

// MustNewMetrics registers the pipeline collectors with reg and panics on
// registration errors.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "campaigner",
				Subsystem: "pipeline",
				Name:      "stage_duration_seconds",
				Help:      "Duration spent in each pipeline stage.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"stage", "status"},
		),
		campaigns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "campaigner",
				Subsystem: "pipeline",
				Name:      "campaigns_total",
				Help:      "Pipeline runs by outcome.",
			},
			[]string{"outcome"},
		),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "campaigner",
				Subsystem: "pipeline",
				Name:      "tool_calls_total",
				Help:      "Tool invocations executed per stage.",
			},
			[]string{"stage"},
		),
		active: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "campaigner",
				Subsystem: "pipeline",
				Name:      "campaigns_active",
				Help:      "Number of pipeline runs in progress.",
			},
		),
	}
	reg.MustRegister(m.stageDuration, m.campaigns, m.toolCalls, m.active)
	return m
}

func (m *Metrics) ObserveStage(stage, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage, status).Observe(d.Seconds())
}

func (m *Metrics) AddToolCalls(stage string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.toolCalls.WithLabelValues(stage).Add(float64(n))
}

func (m *Metrics) IncCampaign(outcome string) {
	if m == nil {
		return
	}
	m.campaigns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncActive() {
	if m == nil {
		return
	}
	m.active.Inc()
}

func (m *Metrics) DecActive() {
	if m == nil {
		return
	}
	m.active.Dec()
}
