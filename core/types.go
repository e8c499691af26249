// Package core declares the value types shared by every apportionment method:
// Entity, Request and SeatVector, together with the sentinel errors used by
// validation and by the Method contract.
//
// Errors:
//
//	ErrInvalidInput     - umbrella for every request-level validation failure.
//	ErrNonPositiveSeats - the seat total K is zero or negative.
//	ErrNoEntities       - the request carries no entities.
//	ErrNegativeWeight   - an entity weight is below zero.
//	ErrNonFiniteWeight  - an entity weight (or the weight sum) is NaN or ±Inf.
//	ErrZeroTotalWeight  - all weights are zero, so no quota can be formed.
//	ErrConvergence      - a divisor search could not reach exactly K seats.
//	ErrBadSeatVector    - a Method returned a vector that breaks the SeatVector contract.
package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for request validation and method execution.
var (
	// ErrInvalidInput is the umbrella for all request validation failures.
	// Every more specific validation sentinel below matches it via errors.Is.
	ErrInvalidInput = errors.New("core: invalid input")

	// ErrNonPositiveSeats indicates K ≤ 0.
	ErrNonPositiveSeats = fmt.Errorf("%w: seat total must be positive", ErrInvalidInput)

	// ErrNoEntities indicates an empty entity list.
	ErrNoEntities = fmt.Errorf("%w: no entities", ErrInvalidInput)

	// ErrNegativeWeight indicates an entity with weight < 0.
	ErrNegativeWeight = fmt.Errorf("%w: negative weight", ErrInvalidInput)

	// ErrNonFiniteWeight indicates a NaN or infinite weight, or a weight sum that overflowed.
	ErrNonFiniteWeight = fmt.Errorf("%w: weight is not finite", ErrInvalidInput)

	// ErrZeroTotalWeight indicates that the weights sum to zero.
	ErrZeroTotalWeight = fmt.Errorf("%w: total weight is zero", ErrInvalidInput)

	// ErrConvergence indicates that a divisor search exhausted its iteration
	// budget without finding a divisor that yields exactly K seats.
	ErrConvergence = errors.New("core: divisor search did not converge")

	// ErrBadSeatVector indicates that a Method returned a vector of the wrong
	// length, with a negative entry, or whose sum differs from K.
	ErrBadSeatVector = errors.New("core: seat vector violates contract")
)

// Entity is a weighted participant in an apportionment, e.g. a state and its
// population. Name is an opaque label; it is carried through for
// identification only and need not be unique.
type Entity struct {
	// Name identifies the entity in reports. Duplicates are allowed.
	Name string

	// Weight is the entity's claim on seats (typically population). Must be ≥ 0.
	Weight float64
}

// Request is an ordered list of entities and the number of seats to hand out.
// Entity order is significant: every SeatVector produced for a Request uses
// the same order.
type Request struct {
	// Entities in caller order.
	Entities []Entity

	// Seats is the target total K.
	Seats int
}

// SeatVector holds one seat count per entity, in request order.
type SeatVector []int

// Sum returns the total number of seats in v.
func (v SeatVector) Sum() int {
	var total int
	for _, s := range v {
		total += s
	}

	return total
}

// Clone returns an independent copy of v.
func (v SeatVector) Clone() SeatVector {
	if v == nil {
		return nil
	}
	out := make(SeatVector, len(v))
	copy(out, v)

	return out
}
