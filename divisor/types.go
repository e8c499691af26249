// Package divisor defines options, phases and sentinel errors for the
// highest-averages (divisor) engines.
package divisor

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/apportion/core"
)

// Sentinel errors for divisor solving. Convergence failures are reported
// with core.ErrConvergence so that callers can match them across methods.
var (
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("divisor: invalid option supplied")

	// ErrUnknownPolicy is returned for a rounding.Policy outside the declared set.
	ErrUnknownPolicy = errors.New("divisor: unknown rounding policy")
)

// Defaults (single source of truth for DefaultOptions).
const (
	// DefaultTolerance stops bisection once high−low drops below it.
	DefaultTolerance = 1e-10

	// DefaultStepFactor is the multiplicative nudge (0.1%) of the refine phase.
	DefaultStepFactor = 1e-3

	// DefaultMaxBisections caps the bisection phase. 200 halvings exhaust
	// float64 resolution for any positive starting interval.
	DefaultMaxBisections = 200

	// DefaultMaxRefinements caps the refine phase before ErrConvergence.
	DefaultMaxRefinements = 2000
)

// Engine selects how a divisor method computes its seats.
type Engine int

const (
	// EngineSearch bisects for a divisor D with Σ f(w/D) == K, then refines
	// it multiplicatively. Exact ties that no divisor can split fail with
	// core.ErrConvergence.
	EngineSearch Engine = iota

	// EngineSequential awards seats one at a time to the largest priority
	// w / Signpost(n). Ties go to the earlier entity, so it never fails on
	// plateaus.
	EngineSequential
)

// String implements fmt.Stringer.
func (e Engine) String() string {
	switch e {
	case EngineSearch:
		return "search"
	case EngineSequential:
		return "sequential"
	default:
		return fmt.Sprintf("Engine(%d)", int(e))
	}
}

// ParseEngine resolves "search" or "sequential".
func ParseEngine(s string) (Engine, error) {
	switch s {
	case "search", "":
		return EngineSearch, nil
	case "sequential":
		return EngineSequential, nil
	default:
		return 0, fmt.Errorf("%w: unknown engine %q", ErrOptionViolation, s)
	}
}

// Phase names the stage of the solver that produced a Step.
type Phase int

const (
	// PhaseBisect is the interval-halving stage.
	PhaseBisect Phase = iota

	// PhaseRefine is the bounded multiplicative adjustment stage.
	PhaseRefine

	// PhaseSequential is one seat award of EngineSequential.
	PhaseSequential

	// PhaseExpand doubles the upper end of the search interval.
	PhaseExpand
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseBisect:
		return "bisect"
	case PhaseRefine:
		return "refine"
	case PhaseSequential:
		return "sequential"
	case PhaseExpand:
		return "expand"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Step describes one trial of the solver, as passed to the OnStep hook.
//
// For PhaseExpand / PhaseBisect / PhaseRefine, Divisor is the trial divisor
// and Total the rounded seat sum at that divisor (sums above K are reported
// as K+1, since summation stops early). For PhaseSequential, Divisor is the priority of
// the awarded seat and Total the number of seats handed out so far.
type Step struct {
	Phase     Phase
	Iteration int
	Divisor   float64
	Total     int
}

// Solution is the full outcome of a divisor solve.
type Solution struct {
	// Seats per entity, in input order.
	Seats core.SeatVector

	// Divisor is a witness D with Seats[i] == f(w_i/D) for EngineSearch.
	// For EngineSequential it is the priority of the last seat awarded
	// (0 when every seat came from the initial grant).
	Divisor float64

	// Phase is the stage that produced the result.
	Phase Phase

	// Expansions, Bisections and Refinements count the trials spent in each phase.
	Expansions  int
	Bisections  int
	Refinements int
}

// Option configures a divisor solve via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when the
// solver runs.
type Option func(*Options)

// Options holds the tunable constants of the solvers. None of them is
// load-bearing: they trade run time against the chance of converging on
// near-degenerate inputs.
type Options struct {
	// Tolerance is the bisection stopping width (> 0).
	Tolerance float64

	// StepFactor is the relative divisor nudge of the refine phase, in (0, 1).
	StepFactor float64

	// MaxBisections caps the bisection phase and, separately, the
	// expansion of the interval before it (≥ 0).
	MaxBisections int

	// MaxRefinements caps the refine phase (≥ 0).
	MaxRefinements int

	// Engine selects search or sequential allocation.
	Engine Engine

	// OnStep is called for every trial. It must not retain the Step beyond the call.
	OnStep func(Step)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with the documented defaults and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Tolerance:      DefaultTolerance,
		StepFactor:     DefaultStepFactor,
		MaxBisections:  DefaultMaxBisections,
		MaxRefinements: DefaultMaxRefinements,
		Engine:         EngineSearch,
		OnStep:         func(Step) {},
	}
}

// WithTolerance sets the bisection stopping width. tol must be finite and > 0.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: Tolerance must be finite and positive (%g)", ErrOptionViolation, tol)

			return
		}
		o.Tolerance = tol
	}
}

// WithStepFactor sets the refine nudge. step must lie in (0, 1).
func WithStepFactor(step float64) Option {
	return func(o *Options) {
		if !(step > 0 && step < 1) {
			o.err = fmt.Errorf("%w: StepFactor must be in (0,1) (%g)", ErrOptionViolation, step)

			return
		}
		o.StepFactor = step
	}
}

// WithMaxBisections caps the bisection phase. n == 0 skips straight to refine.
func WithMaxBisections(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxBisections cannot be negative (%d)", ErrOptionViolation, n)

			return
		}
		o.MaxBisections = n
	}
}

// WithMaxRefinements caps the refine phase. n == 0 allows a single check of
// the bisection's upper bound and no nudges.
func WithMaxRefinements(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxRefinements cannot be negative (%d)", ErrOptionViolation, n)

			return
		}
		o.MaxRefinements = n
	}
}

// WithEngine selects the allocation engine.
func WithEngine(e Engine) Option {
	return func(o *Options) {
		if e != EngineSearch && e != EngineSequential {
			o.err = fmt.Errorf("%w: %s", ErrOptionViolation, e)

			return
		}
		o.Engine = e
	}
}

// WithOnStep registers a hook called for every solver trial. Hooks compose:
// each WithOnStep runs after the ones registered before it.
func WithOnStep(fn func(Step)) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		prev := o.OnStep
		if prev == nil {
			o.OnStep = fn

			return
		}
		o.OnStep = func(s Step) {
			prev(s)
			fn(s)
		}
	}
}

// gatherOptions applies opts over the defaults and returns the first
// recorded violation, if any.
func gatherOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
		if o.err != nil {
			return o, o.err
		}
	}

	return o, nil
}

// ValidateOptions reports the first violation among opts without solving.
func ValidateOptions(opts ...Option) error {
	_, err := gatherOptions(opts...)

	return err
}
