// Package remainder implements the largest-remainder (Hamilton / Vinton)
// apportionment method.
//
// Algorithm:
//  1. sd = Σw / K (the standard divisor); quota_i = w_i / sd.
//  2. Every entity gets ⌊quota_i⌋ seats.
//  3. The r = K − Σ⌊quota_i⌋ leftover seats go, one each, to the r entities
//     with the largest fractional remainders quota_i − ⌊quota_i⌋.
//     Equal remainders keep input order (stable sort): the earlier entity
//     wins the disputed seat.
//
// Guarantees: ⌊quota_i⌋ ≤ seats_i ≤ ⌊quota_i⌋+1 and Σ seats == K.
//
// Complexity: O(n log n) time (the sort), O(n) memory.
package remainder

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/apportion/core"
)

// Allocation is the full outcome of a largest-remainder run.
type Allocation struct {
	// Seats per entity, in input order.
	Seats core.SeatVector

	// Quotas holds w_i / sd per entity.
	Quotas []float64

	// StandardDivisor is Σw / K.
	StandardDivisor float64

	// Leftover is the number of seats handed out by remainder (K − Σ⌊quota⌋).
	Leftover int
}

// Allocate runs the largest-remainder method.
//
// Errors: the core.ErrInvalidInput family from core.Validate. If float
// error ever pushed the leftover count outside [0, n] the result is reported
// as core.ErrBadSeatVector rather than silently clamped.
func Allocate(entities []core.Entity, seats int) (Allocation, error) {
	total, err := core.Validate(entities, seats)
	if err != nil {
		return Allocation{}, err
	}

	n := len(entities)
	a := Allocation{
		Seats:           make(core.SeatVector, n),
		Quotas:          make([]float64, n),
		StandardDivisor: total / float64(seats),
	}

	var (
		floors int
		order  = make([]int, n)
		rem    = make([]float64, n)
	)
	for i, e := range entities {
		q := e.Weight / a.StandardDivisor
		f := math.Floor(q)
		a.Quotas[i] = q
		a.Seats[i] = int(f)
		rem[i] = q - f
		floors += int(f)
		order[i] = i
	}

	a.Leftover = seats - floors
	if a.Leftover < 0 || a.Leftover > n {
		return Allocation{}, fmt.Errorf("remainder: %d leftover seats for %d entities: %w",
			a.Leftover, n, core.ErrBadSeatVector)
	}

	// Descending remainder; SortStableFunc keeps input order on ties.
	slices.SortStableFunc(order, func(x, y int) int {
		return cmp.Compare(rem[y], rem[x])
	})
	for _, i := range order[:a.Leftover] {
		a.Seats[i]++
	}

	return a, nil
}

// Hamilton is the largest-remainder method as a core.Method.
type Hamilton struct{}

var _ core.Method = Hamilton{}

// Name implements core.Method.
func (Hamilton) Name() string { return "hamilton" }

// Allocate implements core.Method.
func (Hamilton) Allocate(entities []core.Entity, seats int) (core.SeatVector, error) {
	a, err := Allocate(entities, seats)
	if err != nil {
		return nil, err
	}

	return a.Seats, nil
}
