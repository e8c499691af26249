// Package core defines the data model and the dispatch point shared by all
// apportionment methods.
//
// An apportionment hands out K indivisible seats among weighted entities
// (states by population, parties by votes, ...). core keeps that model small
// and immutable:
//
//   - Entity     – opaque Name plus a non-negative Weight.
//   - Request    – ordered entities and the seat total K.
//   - SeatVector – one non-negative count per entity, Σ == K.
//   - Method     – the strategy contract (Name + Allocate).
//   - Apply      – validate → run the method → check the SeatVector contract.
//
// Methods live in sibling packages (remainder, divisor) and are collected by
// name in package methods. core imports none of them, so new methods can be
// added without touching this package.
//
// Usage:
//
//	req, err := core.NewRequest(435, entities...)
//	if err != nil {
//	    // errors.Is(err, core.ErrInvalidInput)
//	}
//	seats, err := core.Apply(req, divisor.HuntingtonHill())
//
// Errors:
//
//	Validation failures match core.ErrInvalidInput and one of the narrower
//	sentinels (ErrNonPositiveSeats, ErrNoEntities, ErrNegativeWeight,
//	ErrNonFiniteWeight, ErrZeroTotalWeight). Divisor methods may return
//	ErrConvergence. Apply reports ErrBadSeatVector if a method breaks the
//	SeatVector contract.
//
// Concurrency:
//
//	Everything here is pure and synchronous; a Request may be shared by any
//	number of goroutines as long as nobody mutates its Entities slice.
package core
