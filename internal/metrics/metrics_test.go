package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
)

func TestObserveAction(t *testing.T) {
	m := New()

	m.ObserveAction(constants.ActionSelectTasker, nil)
	m.ObserveAction(constants.ActionSelectTasker, apperrors.ErrTaskNotActive)
	m.ObserveAction(constants.ActionSelectTasker, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("select_tasker", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("select_tasker", "invalid_transition")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("select_tasker", "internal")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAction(constants.ActionEdit, nil)
		m.ObserveGate(true)
		m.ObservePaymentRelease(nil)
		m.ObserveNotifyFailure()
	})
}
