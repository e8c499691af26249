package core

import (
	"fmt"
)

// Method is the contract every apportionment rule implements.
//
// Allocate receives the entities in request order and the seat total K and
// returns one seat count per entity. Implementations must not mutate
// entities, must not keep state between calls, and may assume that the
// inputs already passed Validate (they may re-check them).
type Method interface {
	// Name returns a short, stable identifier such as "hamilton" or "webster".
	Name() string

	// Allocate distributes seats among entities.
	Allocate(entities []Entity, seats int) (SeatVector, error)
}

// MethodFunc adapts a plain function to the Method interface.
//
// Example:
//
//	equal := core.MethodFunc{Label: "equal", Fn: func(es []core.Entity, k int) (core.SeatVector, error) { ... }}
//	seats, err := core.Apply(req, equal)
type MethodFunc struct {
	Label string
	Fn    func(entities []Entity, seats int) (SeatVector, error)
}

// Name implements Method.
func (f MethodFunc) Name() string { return f.Label }

// Allocate implements Method.
func (f MethodFunc) Allocate(entities []Entity, seats int) (SeatVector, error) {
	return f.Fn(entities, seats)
}

// Apply runs m on req and returns the seat vector.
//
// Stages:
//  1. Validate the request (fail fast, before any division).
//  2. Hand the method a private copy of the entities.
//  3. Check the returned vector: same length, entries ≥ 0, Σ == K.
//
// Errors from the method are wrapped as "<method>: <err>" so that callers can
// still match them with errors.Is (ErrInvalidInput, ErrConvergence, ...).
func Apply(req Request, m Method) (SeatVector, error) {
	if m == nil {
		return nil, fmt.Errorf("apply: nil method: %w", ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}

	entities := make([]Entity, len(req.Entities))
	copy(entities, req.Entities)

	seats, err := m.Allocate(entities, req.Seats)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}
	if err = CheckSeatVector(seats, len(req.Entities), req.Seats); err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}

	return seats, nil
}

// CheckSeatVector verifies the SeatVector contract: len(v) == n, v[i] ≥ 0 and
// Σ v == seats. It returns ErrBadSeatVector with details on violation.
func CheckSeatVector(v SeatVector, n, seats int) error {
	if len(v) != n {
		return fmt.Errorf("%w: length %d, want %d", ErrBadSeatVector, len(v), n)
	}
	var total int
	for i, s := range v {
		if s < 0 {
			return fmt.Errorf("%w: entry %d is negative (%d)", ErrBadSeatVector, i, s)
		}
		total += s
	}
	if total != seats {
		return fmt.Errorf("%w: sum %d, want %d", ErrBadSeatVector, total, seats)
	}

	return nil
}
