package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
)

const namespace = "task_market"

type Metrics struct {
	registry *prometheus.Registry

	actions         *prometheus.CounterVec
	gateDecisions   *prometheus.CounterVec
	paymentReleases *prometheus.CounterVec
	notifyFailures  prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_actions_total",
			Help:      "Task actions by action name and outcome (ok or error kind).",
		}, []string{"action", "outcome"}),
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "approval_gate_decisions_total",
			Help:      "Approval gate decisions for tasker navigation.",
		}, []string{"decision"}),
		paymentReleases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_releases_total",
			Help:      "Payment release triggers after dual completion.",
		}, []string{"outcome"}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Task events that could not be published.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.actions,
		m.gateDecisions,
		m.paymentReleases,
		m.notifyFailures,
	)
	return m
}

// ObserveAction counts one attempted action. A nil receiver is a no-op so
// services can run without metrics in tests.
func (m *Metrics) ObserveAction(action constants.Action, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(apperrors.KindOf(err))
		if outcome == "" {
			outcome = "internal"
		}
	}
	m.actions.WithLabelValues(string(action), outcome).Inc()
}

func (m *Metrics) ObserveGate(allowed bool) {
	if m == nil {
		return
	}
	decision := "denied"
	if allowed {
		decision = "allowed"
	}
	m.gateDecisions.WithLabelValues(decision).Inc()
}

func (m *Metrics) ObservePaymentRelease(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.paymentReleases.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveNotifyFailure() {
	if m == nil {
		return
	}
	m.notifyFailures.Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
