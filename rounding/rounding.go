// Package rounding maps a real quotient (weight / divisor) to a whole number
// of seats. Each Policy is the rounding rule that distinguishes one
// highest-averages method from another:
//
//   - Floor         – Jefferson / D'Hondt:       ⌊x⌋
//   - Nearest       – Webster / Sainte-Laguë:    round half up
//   - GeometricMean – Huntington-Hill:           up iff x ≥ √(⌊x⌋·⌈x⌉)
//   - Ceil          – Adams:                     ⌈x⌉
//
// Policies are stateless and safe for concurrent use. Quotients are expected
// to be ≥ 0; behaviour for negative input is unspecified.
package rounding

import (
	"fmt"
	"math"
	"strings"
)

// Policy selects a rounding rule.
type Policy int

const (
	// Floor rounds down.
	Floor Policy = iota

	// Nearest rounds to the nearest integer; an exact .5 goes up.
	Nearest

	// GeometricMean rounds up iff x reaches the geometric mean of its
	// neighbouring integers. Every 0 < x < 1 therefore rounds to 1.
	GeometricMean

	// Ceil rounds up.
	Ceil
)

// Policies lists every known policy in declaration order.
var Policies = []Policy{Floor, Nearest, GeometricMean, Ceil}

var policyNames = map[Policy]string{
	Floor:         "floor",
	Nearest:       "nearest",
	GeometricMean: "geometric-mean",
	Ceil:          "ceil",
}

// String implements fmt.Stringer.
func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}

	return fmt.Sprintf("Policy(%d)", int(p))
}

// Valid reports whether p is one of the declared policies.
func (p Policy) Valid() bool {
	_, ok := policyNames[p]

	return ok
}

// ParsePolicy resolves a policy by its String form (case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("rounding: unknown policy %q", s)
}

// Round applies p to x and returns the seat count.
func (p Policy) Round(x float64) int {
	return int(p.RoundFloat(x))
}

// RoundFloat applies p to x without converting to int. Search loops use it
// so that enormous quotients (tiny trial divisors) never overflow int.
func (p Policy) RoundFloat(x float64) float64 {
	switch p {
	case Floor:
		return math.Floor(x)
	case Nearest:
		return roundHalfUp(x)
	case GeometricMean:
		return roundGeometric(x)
	case Ceil:
		return math.Ceil(x)
	default:
		return math.NaN()
	}
}

// Signpost returns the quotient at which p moves from n seats to n+1:
//
//	Floor: n+1   Nearest: n+½   GeometricMean: √(n·(n+1))   Ceil: n
//
// A divisor method gives the next seat to the entity with the largest
// weight / Signpost(current seats). A zero signpost means the first seat is
// granted to every entity with positive weight.
func (p Policy) Signpost(n int) float64 {
	f := float64(n)
	switch p {
	case Floor:
		return f + 1
	case Nearest:
		return f + 0.5
	case GeometricMean:
		return math.Sqrt(f * (f + 1))
	case Ceil:
		return f
	default:
		return math.NaN()
	}
}

// roundHalfUp compares the fractional part directly; floor(x+0.5) misrounds
// values just below .5 whose sum with 0.5 rounds up to the next integer.
func roundHalfUp(x float64) float64 {
	lo := math.Floor(x)
	if x-lo >= 0.5 {
		return lo + 1
	}

	return lo
}

func roundGeometric(x float64) float64 {
	lo, hi := math.Floor(x), math.Ceil(x)
	if lo == hi {
		return x
	}
	if x < math.Sqrt(lo*hi) {
		return lo
	}

	return hi
}
