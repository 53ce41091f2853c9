// Package metrics defines the Prometheus collectors exported on /metrics.
//
// All methods are safe on a nil *Metrics, which records nothing.
package metrics

import (
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "santa"

// Metrics holds the service's collectors.
type Metrics struct {
	RPCRequests     *prometheus.CounterVec
	RPCDuration     *prometheus.HistogramVec
	Assignments     *prometheus.CounterVec
	RosterSize      prometheus.Histogram
	RosterMutations *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RPCRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Assignments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_total",
			Help:      "Assignment runs by result code.",
		}, []string{"result"}),
		RosterSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assignment_roster_size",
			Help:      "Number of participants in successfully assigned events.",
			Buckets:   []float64{2, 3, 5, 8, 13, 21, 34, 55, 89},
		}),
		RosterMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_mutations_total",
			Help:      "Roster changes by operation and result code.",
		}, []string{"op", "result"}),
	}
}

// Code returns "ok" for a nil error and the snake_case Connect code otherwise.
func Code(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}

func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.RPCRequests.WithLabelValues(procedure, code).Inc()
	m.RPCDuration.WithLabelValues(procedure).Observe(d.Seconds())
}

// ObserveAssignment counts an assignment attempt; size is recorded on success only.
func (m *Metrics) ObserveAssignment(err error, size int) {
	if m == nil {
		return
	}
	result := Code(err)
	m.Assignments.WithLabelValues(result).Inc()
	if err == nil {
		m.RosterSize.Observe(float64(size))
	}
}

func (m *Metrics) ObserveRosterMutation(op string, err error) {
	if m == nil {
		return
	}
	m.RosterMutations.WithLabelValues(op, Code(err)).Inc()
}
