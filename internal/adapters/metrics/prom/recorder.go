// Package prom exposes the scaling loop's observations as Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
)

const (
	Namespace = "azscaler"

	resultSuccess = "success"
	resultFailure = "failure"
)

// Recorder implements ports.ScalingMetrics on a private registry, so several
// recorders can coexist in tests.
type Recorder struct {
	registry *prometheus.Registry

	onlineAgents prometheus.Gauge
	waitingJobs  prometheus.Gauge
	scaleUps     *prometheus.CounterVec
	scaleDowns   *prometheus.CounterVec
	cycles       prometheus.Counter
	readErrors   *prometheus.CounterVec
	lastObserved prometheus.Gauge
}

var _ ports.ScalingMetrics = (*Recorder)(nil)

// NewRecorder registers the scaler metrics, plus the Go runtime and process
// collectors, under the given pool label.
func NewRecorder(poolName string) *Recorder {
	constLabels := prometheus.Labels{"pool": poolName}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		onlineAgents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Name:        "online_agents",
			Help:        "Online agents observed in the pool during the last cycle.",
			ConstLabels: constLabels,
		}),
		waitingJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Name:        "waiting_jobs",
			Help:        "Unassigned job requests observed during the last cycle.",
			ConstLabels: constLabels,
		}),
		scaleUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   Namespace,
			Name:        "scale_ups_total",
			Help:        "Agent creations attempted, by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		scaleDowns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   Namespace,
			Name:        "scale_downs_total",
			Help:        "Scale-down attempts, by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   Namespace,
			Name:        "cycles_total",
			Help:        "Reconciliation cycles run.",
			ConstLabels: constLabels,
		}),
		readErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   Namespace,
			Name:        "read_errors_total",
			Help:        "Failed reads of pool state, by read.",
			ConstLabels: constLabels,
		}, []string{"read"}),
		lastObserved: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   Namespace,
			Name:        "last_observation_timestamp_seconds",
			Help:        "Unix time of the last pool observation.",
			ConstLabels: constLabels,
		}),
	}

	r.registry.MustRegister(
		r.onlineAgents, r.waitingJobs, r.scaleUps, r.scaleDowns, r.cycles, r.readErrors, r.lastObserved,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Pre-create the label values so the series exist at zero.
	for _, result := range []string{resultSuccess, resultFailure} {
		r.scaleUps.WithLabelValues(result)
	}
	for _, result := range []ports.ScaleDownResult{
		ports.ScaleDownRemoved, ports.ScaleDownNoIdleAgent, ports.ScaleDownDeregisterFail, ports.ScaleDownContainerFail,
	} {
		r.scaleDowns.WithLabelValues(string(result))
	}
	for _, read := range []ports.ReadKind{ports.ReadOnlineAgents, ports.ReadWaitingJobs, ports.ReadIdleAgent} {
		r.readErrors.WithLabelValues(string(read))
	}

	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveSnapshot(snapshot domain.PoolSnapshot) {
	r.onlineAgents.Set(float64(snapshot.OnlineAgents))
	r.waitingJobs.Set(float64(snapshot.WaitingJobs))
	if !snapshot.ObservedAt.IsZero() {
		r.lastObserved.Set(float64(snapshot.ObservedAt.Unix()))
	}
}

func (r *Recorder) ObserveReadError(kind ports.ReadKind) {
	r.readErrors.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) ObserveScaleUp(err error) {
	result := resultSuccess
	if err != nil {
		result = resultFailure
	}
	r.scaleUps.WithLabelValues(result).Inc()
}

func (r *Recorder) ObserveScaleDown(result ports.ScaleDownResult) {
	r.scaleDowns.WithLabelValues(string(result)).Inc()
}

func (r *Recorder) ObserveCycle() {
	r.cycles.Inc()
}
