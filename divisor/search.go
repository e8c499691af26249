package divisor

import (
	"fmt"
	"math"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/rounding"
)

// Solve validates the input and runs the engine selected in opts
// (EngineSearch by default) for the given rounding policy.
//
// Errors:
//   - core.ErrInvalidInput family – bad entities or seats (checked first).
//   - ErrUnknownPolicy            – policy outside the declared set.
//   - ErrOptionViolation          – an Option rejected its argument.
//   - core.ErrConvergence         – no divisor found within the iteration caps.
func Solve(entities []core.Entity, seats int, policy rounding.Policy, opts ...Option) (Solution, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return Solution{}, err
	}
	if o.Engine == EngineSequential {
		return sequential(entities, seats, policy, o)
	}

	return search(entities, seats, policy, o)
}

// Search runs the expand → bisect → refine → fail state machine regardless of the
// Engine option.
//
// Algorithm:
//  0. Start from high = sd for Floor, 2·sd for Nearest and GeometricMean,
//     and max(sd, max weight) for Ceil (sd = Σw / K). While the total at
//     high is still above K, move low to high and double high, at most
//     MaxBisections times. GeometricMean and Ceil requests with more
//     positive weights than seats fail here with core.ErrConvergence.
//  1. Bisect D over [low, high]. A total above K moves low up, a total below K moves high down; an exact
//     K ends the solve. The phase stops when high−low < Tolerance, after
//     MaxBisections trials, or when the midpoint is no longer representable
//     strictly between the bounds.
//  2. Refine from D = high: shrink D by StepFactor while the total is below K,
//     grow it while above. Each direction change halves the step. The phase
//     ends on an exact K, after MaxRefinements nudges, or when the nudge no
//     longer changes D.
//  3. Otherwise return core.ErrConvergence.
//
// Complexity: O((2·MaxBisections + MaxRefinements) · n) time, O(n) memory.
func Search(entities []core.Entity, seats int, policy rounding.Policy, opts ...Option) (Solution, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return Solution{}, err
	}

	return search(entities, seats, policy, o)
}

func search(entities []core.Entity, seats int, policy rounding.Policy, o Options) (Solution, error) {
	if !policy.Valid() {
		return Solution{}, fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
	}
	total, err := core.Validate(entities, seats)
	if err != nil {
		return Solution{}, err
	}

	if need := firstSeats(entities, policy); need > seats {
		return Solution{}, fmt.Errorf("%s: %d entities need a first seat but only %d seats exist: %w",
			policy, need, seats, core.ErrConvergence)
	}

	var (
		sol  Solution
		sd   = total / float64(seats)
		low  = 0.0
		high = upperBound(policy, sd, maxWeight(entities))
	)

	// Phase 0: expansion. Quotients below one round up under GeometricMean,
	// so 2·sd can still hand out more than K seats.
	for sol.Expansions < o.MaxBisections {
		t := tally(entities, high, policy, seats)
		if t <= seats {
			break
		}
		sol.Expansions++
		o.OnStep(Step{Phase: PhaseExpand, Iteration: sol.Expansions, Divisor: high, Total: t})
		low, high = high, 2*high
	}

	// Phase 1: bisection.
	for sol.Bisections < o.MaxBisections && high-low > o.Tolerance {
		mid := low + (high-low)/2
		if mid <= low || mid >= high {
			break
		}
		sol.Bisections++
		t := tally(entities, mid, policy, seats)
		o.OnStep(Step{Phase: PhaseBisect, Iteration: sol.Bisections, Divisor: mid, Total: t})
		switch {
		case t > seats:
			low = mid
		case t < seats:
			high = mid
		default:
			return finish(sol, entities, mid, policy, PhaseBisect), nil
		}
	}

	// Phase 2: bounded multiplicative refinement.
	var (
		d    = high
		step = o.StepFactor
		dir  int
		t    int
	)
	for {
		t = tally(entities, d, policy, seats)
		o.OnStep(Step{Phase: PhaseRefine, Iteration: sol.Refinements, Divisor: d, Total: t})
		if t == seats {
			return finish(sol, entities, d, policy, PhaseRefine), nil
		}
		if sol.Refinements >= o.MaxRefinements {
			break
		}
		sol.Refinements++

		next := -1 // too few seats: lower the divisor
		if t > seats {
			next = 1
		}
		if dir != 0 && next != dir {
			step /= 2
		}
		dir = next

		nd := d * (1 + float64(dir)*step)
		if nd == d || nd <= 0 {
			break
		}
		d = nd
	}

	// Phase 3: give up.
	return Solution{}, fmt.Errorf("%s: total %d at divisor %g after %d expansions, %d bisections and %d refinements, want %d: %w",
		policy, t, d, sol.Expansions, sol.Bisections, sol.Refinements, seats, core.ErrConvergence)
}

// finish materialises the seat vector at divisor d.
func finish(sol Solution, entities []core.Entity, d float64, policy rounding.Policy, phase Phase) Solution {
	sol.Seats = make(core.SeatVector, len(entities))
	for i, e := range entities {
		sol.Seats[i] = policy.Round(e.Weight / d)
	}
	sol.Divisor = d
	sol.Phase = phase

	return sol
}

// tally returns Σ f(w_i/d). Once the running sum exceeds limit it returns
// limit+1 without looking at the remaining entities.
func tally(entities []core.Entity, d float64, policy rounding.Policy, limit int) int {
	var (
		sum float64
		lim = float64(limit)
	)
	for _, e := range entities {
		sum += policy.RoundFloat(e.Weight / d)
		if sum > lim {
			return limit + 1
		}
	}

	return int(sum)
}

// upperBound returns the starting high end of the search interval.
func upperBound(policy rounding.Policy, sd, maxW float64) float64 {
	switch policy {
	case rounding.Floor:
		return sd
	case rounding.Ceil:
		// At D = max weight every positive entity rounds to exactly one seat.
		return math.Max(sd, maxW)
	default:
		// Rounding up can need a divisor above the arithmetic mean to drop to K.
		return 2 * sd
	}
}

func maxWeight(entities []core.Entity) float64 {
	var m float64
	for _, e := range entities {
		if e.Weight > m {
			m = e.Weight
		}
	}

	return m
}
