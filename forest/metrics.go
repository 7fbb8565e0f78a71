package forest

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "meshforest"

// Metrics exports adaptation counts. A nil *Metrics records nothing.
type Metrics struct {
	actions  *prometheus.CounterVec
	elements prometheus.Gauge
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "adapt",
			Name:      "actions_total",
			Help:      "Adaptation decisions applied, by action.",
		}, []string{"action"}),
		elements: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "adapt",
			Name:      "elements",
			Help:      "Number of elements produced by the most recent adaptation.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "adapt",
			Name:      "duration_seconds",
			Help:      "Wall time of whole forest adaptations.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{m.actions, m.elements, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(s Stats, d time.Duration) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues("refine").Add(float64(s.Refined))
	m.actions.WithLabelValues("keep").Add(float64(s.Kept))
	m.actions.WithLabelValues("coarsen").Add(float64(s.Coarsened))
	m.actions.WithLabelValues("remove").Add(float64(s.Removed))
	m.actions.WithLabelValues("veto").Add(float64(s.Vetoed))
	m.elements.Set(float64(s.ElementsOut))
	m.duration.Observe(d.Seconds())
}
