package metrics_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/divisor"
	"github.com/katalvlaran/apportion/metrics"
	"github.com/katalvlaran/apportion/remainder"
)

func TestInstrument_DivisorMethod(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg, "")

	m := metrics.Instrument(divisor.Webster(), c)
	assert.Equal(t, "webster", m.Name())

	req, err := core.NewRequest(5, core.Entity{Name: "solo", Weight: 42})
	require.NoError(t, err)
	seats, err := core.Apply(req, m)
	require.NoError(t, err)
	assert.Equal(t, core.SeatVector{5}, seats)

	seq := metrics.Instrument(divisor.Webster(divisor.WithEngine(divisor.EngineSequential)), c)
	_, err = core.Apply(req, seq)
	require.NoError(t, err)

	expected := `
# HELP apportion_divisor_steps_total Trial divisors evaluated by rounding policy and solver phase.
# TYPE apportion_divisor_steps_total counter
apportion_divisor_steps_total{phase="bisect",policy="nearest"} 1
apportion_divisor_steps_total{phase="sequential",policy="nearest"} 5
# HELP apportion_runs_total Total apportionment runs by method and outcome.
# TYPE apportion_runs_total counter
apportion_runs_total{method="webster",outcome="ok"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"apportion_runs_total", "apportion_divisor_steps_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(reg, "apportion_run_duration_seconds"))
}

func TestInstrument_Outcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg, "test")

	h := metrics.Instrument(remainder.Hamilton{}, c)
	_, err := h.Allocate(nil, 3)
	require.ErrorIs(t, err, core.ErrNoEntities)

	j := metrics.Instrument(divisor.Jefferson(), c)
	_, err = j.Allocate([]core.Entity{{Name: "a", Weight: 100}, {Name: "b", Weight: 100}}, 3)
	require.ErrorIs(t, err, core.ErrConvergence)

	expected := `
# HELP test_runs_total Total apportionment runs by method and outcome.
# TYPE test_runs_total counter
test_runs_total{method="hamilton",outcome="invalid_input"} 1
test_runs_total{method="jefferson",outcome="no_convergence"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_runs_total"))
}

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		metrics.OutcomeOK:             nil,
		metrics.OutcomeInvalidInput:   fmt.Errorf("x: %w", core.ErrZeroTotalWeight),
		metrics.OutcomeNoConvergence:  fmt.Errorf("x: %w", core.ErrConvergence),
		metrics.OutcomeInvalidOptions: divisor.ErrOptionViolation,
		metrics.OutcomeError:          errors.New("disk on fire"),
	}
	for want, err := range cases {
		assert.Equal(t, want, metrics.Outcome(err))
	}
}

func TestObserveRun_Direct(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg, "")
	c.ObserveRun("custom", 3*time.Millisecond, nil)
	c.ObserveRun("custom", time.Millisecond, nil)

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "apportion_runs_total"))
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "apportion_run_duration_seconds" {
			assert.Equal(t, uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
}
