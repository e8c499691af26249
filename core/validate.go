package core

import (
	"fmt"
	"math"
)

// NewRequest validates entities and seats and returns a Request holding its
// own copy of the entity slice, so later changes by the caller do not leak in.
//
// Errors: any of the ErrInvalidInput family (see Validate).
func NewRequest(seats int, entities ...Entity) (Request, error) {
	if _, err := Validate(entities, seats); err != nil {
		return Request{}, err
	}
	own := make([]Entity, len(entities))
	copy(own, entities)

	return Request{Entities: own, Seats: seats}, nil
}

// Validate checks the preconditions shared by all methods and returns the
// total weight on success.
//
// Order of checks: seats → empty list → per-entity (non-finite, negative)
// → total (overflow, zero). The first failing entity is reported with its
// index and name.
//
// Complexity: O(n).
func Validate(entities []Entity, seats int) (float64, error) {
	if seats <= 0 {
		return 0, fmt.Errorf("seats=%d: %w", seats, ErrNonPositiveSeats)
	}
	if len(entities) == 0 {
		return 0, ErrNoEntities
	}

	var total float64
	for i, e := range entities {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return 0, fmt.Errorf("entity %d (%q): %w", i, e.Name, ErrNonFiniteWeight)
		}
		if e.Weight < 0 {
			return 0, fmt.Errorf("entity %d (%q) weight=%g: %w", i, e.Name, e.Weight, ErrNegativeWeight)
		}
		total += e.Weight
	}
	if math.IsInf(total, 0) {
		return 0, fmt.Errorf("weight sum: %w", ErrNonFiniteWeight)
	}
	if total == 0 {
		return 0, ErrZeroTotalWeight
	}

	return total, nil
}

// Validate checks the request; see the package-level Validate.
func (r Request) Validate() error {
	_, err := Validate(r.Entities, r.Seats)

	return err
}

// Weights returns the entity weights in request order.
func (r Request) Weights() []float64 {
	out := make([]float64, len(r.Entities))
	for i, e := range r.Entities {
		out[i] = e.Weight
	}

	return out
}

// TotalWeight returns Σ weights without validating.
func (r Request) TotalWeight() float64 {
	var total float64
	for _, e := range r.Entities {
		total += e.Weight
	}

	return total
}

// StandardDivisor returns total weight / seats. The request must be valid.
func (r Request) StandardDivisor() float64 {
	return r.TotalWeight() / float64(r.Seats)
}
