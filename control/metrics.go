// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus counters for connection lifecycle and traffic.
// All methods are safe on a nil *Metrics.

package control

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hioload_nio"

// Metrics groups the collectors shared by the loop and the connections.
type Metrics struct {
	ConnectionsOpened *prometheus.CounterVec
	ConnectionsClosed *prometheus.CounterVec
	ActiveConnections *prometheus.GaugeVec
	MessagesSent      *prometheus.CounterVec
	MessagesReceived  *prometheus.CounterVec
	BytesSent         *prometheus.CounterVec
	BytesReceived     *prometheus.CounterVec
	HandlerFailures   *prometheus.CounterVec
	SelectWakeups     prometheus.Counter
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ConnectionsOpened: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_opened_total",
			Help:      "Connections established, by role",
		}, []string{"role"}),
		ConnectionsClosed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_closed_total",
			Help:      "Connections closed, by role and reason",
		}, []string{"role", "reason"}),
		ActiveConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Connections currently registered",
		}, []string{"role"}),
		MessagesSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Messages fully written",
		}, []string{"role"}),
		MessagesReceived: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Messages read and decoded",
		}, []string{"role"}),
		BytesSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_sent_total",
			Help:      "Payload bytes written",
		}, []string{"role"}),
		BytesReceived: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_received_total",
			Help:      "Payload bytes read",
		}, []string{"role"}),
		HandlerFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_failures_total",
			Help:      "Handler errors isolated by the loop, by error kind",
		}, []string{"kind"}),
		SelectWakeups: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "select_wakeups_total",
			Help:      "Returns from the readiness wait",
		}),
	}
}

// ConnOpened records a new connection.
func (m *Metrics) ConnOpened(role string) {
	if m == nil {
		return
	}
	m.ConnectionsOpened.WithLabelValues(role).Inc()
	m.ActiveConnections.WithLabelValues(role).Inc()
}

// ConnClosed records a connection release.
func (m *Metrics) ConnClosed(role, reason string) {
	if m == nil {
		return
	}
	m.ConnectionsClosed.WithLabelValues(role, reason).Inc()
	m.ActiveConnections.WithLabelValues(role).Dec()
}

// Sent records one fully written message of n bytes.
func (m *Metrics) Sent(role string, n int) {
	if m == nil {
		return
	}
	m.MessagesSent.WithLabelValues(role).Inc()
	m.BytesSent.WithLabelValues(role).Add(float64(n))
}

// Received records one decoded message of n bytes.
func (m *Metrics) Received(role string, n int) {
	if m == nil {
		return
	}
	m.MessagesReceived.WithLabelValues(role).Inc()
	m.BytesReceived.WithLabelValues(role).Add(float64(n))
}

// HandlerFailed records an error isolated by the loop.
func (m *Metrics) HandlerFailed(kind string) {
	if m == nil {
		return
	}
	m.HandlerFailures.WithLabelValues(kind).Inc()
}

// Wakeup records one return from the readiness wait.
func (m *Metrics) Wakeup() {
	if m == nil {
		return
	}
	m.SelectWakeups.Inc()
}
