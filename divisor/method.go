package divisor

import (
	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/rounding"
)

// Method is a highest-averages apportionment method: a rounding policy plus
// solver options. It implements core.Method.
type Method struct {
	label   string
	policy  rounding.Policy
	options []Option
}

var _ core.Method = Method{}

// New returns a divisor method named label that rounds with policy.
func New(label string, policy rounding.Policy, opts ...Option) Method {
	own := make([]Option, len(opts))
	copy(own, opts)

	return Method{label: label, policy: policy, options: own}
}

// Jefferson (D'Hondt) rounds quotients down.
func Jefferson(opts ...Option) Method { return New("jefferson", rounding.Floor, opts...) }

// Webster (Sainte-Laguë) rounds quotients half up.
func Webster(opts ...Option) Method { return New("webster", rounding.Nearest, opts...) }

// HuntingtonHill rounds at the geometric mean of neighbouring integers; it
// is the method used for the U.S. House since 1941.
func HuntingtonHill(opts ...Option) Method {
	return New("huntington-hill", rounding.GeometricMean, opts...)
}

// Adams rounds quotients up, so every entity with positive weight gets a seat.
func Adams(opts ...Option) Method { return New("adams", rounding.Ceil, opts...) }

// Name implements core.Method.
func (m Method) Name() string { return m.label }

// Policy returns the rounding policy.
func (m Method) Policy() rounding.Policy { return m.policy }

// With returns a copy of m with extra options appended after the existing ones.
func (m Method) With(opts ...Option) Method {
	all := make([]Option, 0, len(m.options)+len(opts))
	all = append(all, m.options...)
	all = append(all, opts...)

	return Method{label: m.label, policy: m.policy, options: all}
}

// Solve runs the configured engine and returns the full Solution.
func (m Method) Solve(entities []core.Entity, seats int) (Solution, error) {
	return Solve(entities, seats, m.policy, m.options...)
}

// Allocate implements core.Method.
func (m Method) Allocate(entities []core.Entity, seats int) (core.SeatVector, error) {
	sol, err := m.Solve(entities, seats)
	if err != nil {
		return nil, err
	}

	return sol.Seats, nil
}
