package cli

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/apportion/census"
	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/divisor"
	"github.com/katalvlaran/apportion/metrics"
)

// DefaultMethod is used when neither the flag nor the request file names one.
const DefaultMethod = "huntington-hill"

// Globals are the solver settings shared by every command.
type Globals struct {
	Tolerance      float64 `default:"1e-10" env:"APPORTION_TOLERANCE" help:"Bisection stopping width."`
	Step           float64 `default:"0.001" env:"APPORTION_STEP" help:"Relative divisor nudge of the refine phase, in (0,1)."`
	MaxBisections  int     `default:"200" env:"APPORTION_MAX_BISECTIONS" help:"Bisection trials before refining."`
	MaxRefinements int     `default:"2000" env:"APPORTION_MAX_REFINEMENTS" help:"Refine nudges before giving up."`
	Engine         string  `default:"search" enum:"search,sequential" env:"APPORTION_ENGINE" help:"Divisor engine (search, sequential)."`
	MetricsFile    string  `type:"path" env:"APPORTION_METRICS_FILE" help:"Write Prometheus metrics in text format to this file when done."`
}

// session carries the per-invocation solver options and metrics registry.
type session struct {
	options   []divisor.Option
	registry  *prometheus.Registry
	collector *metrics.Collector
	path      string
}

func (g *Globals) session() (*session, error) {
	engine, err := divisor.ParseEngine(g.Engine)
	if err != nil {
		return nil, err
	}
	opts := []divisor.Option{
		divisor.WithTolerance(g.Tolerance),
		divisor.WithStepFactor(g.Step),
		divisor.WithMaxBisections(g.MaxBisections),
		divisor.WithMaxRefinements(g.MaxRefinements),
		divisor.WithEngine(engine),
	}
	if err := divisor.ValidateOptions(opts...); err != nil {
		return nil, err
	}

	s := &session{options: opts, path: g.MetricsFile}
	if s.path != "" {
		s.registry = prometheus.NewRegistry()
		s.collector = metrics.New(s.registry, "")
	}

	return s, nil
}

// instrument wraps m with the session collector, if metrics are enabled.
func (s *session) instrument(m core.Method) core.Method {
	if s.collector == nil {
		return m
	}

	return metrics.Instrument(m, s.collector)
}

// flush writes the metrics file, if one was requested.
func (s *session) flush() error {
	if s.registry == nil {
		return nil
	}

	return prometheus.WriteToTextfile(s.path, s.registry)
}

// loadRoster reads path, or returns the 2020 U.S. census when path is empty.
func loadRoster(path string) (census.Roster, error) {
	if path == "" {
		return census.US2020(), nil
	}

	return census.Load(path)
}
