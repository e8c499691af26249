// Package metrics records apportionment runs in Prometheus.
//
// Collector owns three series:
//
//	apportion_runs_total{method,outcome}          counter
//	apportion_run_duration_seconds{method}        histogram
//	apportion_divisor_steps_total{policy,phase}   counter
//
// Instrument wraps any core.Method so that every Allocate call is counted and
// timed; divisor methods additionally report each solver step.
package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/divisor"
)

// Outcome label values for apportion_runs_total.
const (
	OutcomeOK             = "ok"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeNoConvergence  = "no_convergence"
	OutcomeInvalidOptions = "invalid_options"
	OutcomeError          = "error"
)

// Collector is a Prometheus-backed recorder for apportionment runs.
// Metrics are created and registered on first use.
type Collector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	steps    *prometheus.CounterVec
}

// New creates a collector.
//
// Parameters:
//   - reg: registerer (prometheus.DefaultRegisterer if nil)
//   - namespace: metric namespace ("apportion" if empty)
func New(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "apportion"
	}

	return &Collector{reg: reg, namespace: namespace}
}

func (c *Collector) ensureRegistered() {
	c.once.Do(func() {
		c.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      "runs_total",
			Help:      "Total apportionment runs by method and outcome.",
		}, []string{"method", "outcome"})

		c.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: c.namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of apportionment runs in seconds.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12), // 1µs .. ~4s
		}, []string{"method"})

		c.steps = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      "divisor_steps_total",
			Help:      "Trial divisors evaluated by rounding policy and solver phase.",
		}, []string{"policy", "phase"})

		c.reg.MustRegister(c.runs)
		c.reg.MustRegister(c.duration)
		c.reg.MustRegister(c.steps)
	})
}

// ObserveRun records one finished run of method.
func (c *Collector) ObserveRun(method string, took time.Duration, err error) {
	c.ensureRegistered()
	c.runs.WithLabelValues(method, Outcome(err)).Inc()
	c.duration.WithLabelValues(method).Observe(took.Seconds())
}

// StepHook returns a divisor option that counts every solver step under the
// given policy label.
func (c *Collector) StepHook(policy string) divisor.Option {
	c.ensureRegistered()

	return divisor.WithOnStep(func(s divisor.Step) {
		c.steps.WithLabelValues(policy, s.Phase.String()).Inc()
	})
}

// Outcome classifies err into a runs_total outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, core.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, core.ErrConvergence):
		return OutcomeNoConvergence
	case errors.Is(err, divisor.ErrOptionViolation):
		return OutcomeInvalidOptions
	default:
		return OutcomeError
	}
}

// instrumented decorates a core.Method with run metrics.
type instrumented struct {
	inner core.Method
	c     *Collector
}

// Instrument returns a core.Method that behaves like m and records every
// Allocate call in c. Divisor methods also report their solver steps.
func Instrument(m core.Method, c *Collector) core.Method {
	if dm, ok := m.(divisor.Method); ok {
		m = dm.With(c.StepHook(dm.Policy().String()))
	}

	return instrumented{inner: m, c: c}
}

// Name implements core.Method.
func (i instrumented) Name() string { return i.inner.Name() }

// Allocate implements core.Method.
func (i instrumented) Allocate(entities []core.Entity, seats int) (core.SeatVector, error) {
	start := time.Now()
	out, err := i.inner.Allocate(entities, seats)
	i.c.ObserveRun(i.inner.Name(), time.Since(start), err)

	return out, err
}
