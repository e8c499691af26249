// Package apportion divides a fixed number of indivisible seats among
// entities in proportion to their weights: House seats among states by
// population, parliamentary seats among parties by votes.
//
// 🚀 What is in the box?
//
//	• Largest remainder: Hamilton / Vinton
//	• Divisor methods: Jefferson (D'Hondt), Webster (Sainte-Laguë),
//	  Huntington-Hill, Adams
//	• Two divisor engines: bisect/refine search and a sequential priority list
//	• 2020 U.S. census populations, CSV and YAML request files
//	• Text reports, Prometheus metrics and a kong-based CLI
//
// ✨ Layout
//
//	core/        Entity, Request, SeatVector, validation, Method and Apply
//	rounding/    rounding policies (floor, nearest, geometric mean, ceil)
//	divisor/     divisor engines and the named divisor methods
//	remainder/   largest-remainder allocation
//	methods/     the catalogue: names, aliases, constructors
//	census/      rosters: embedded 2020 census, CSV, YAML
//	report/      aligned tables and method comparisons
//	metrics/     Prometheus collector and Method decorator
//	cli/         command tree; cmd/apportion is the binary
//
// Quick start:
//
//	req, _ := core.NewRequest(7,
//		core.Entity{Name: "Red", Weight: 53000},
//		core.Entity{Name: "Green", Weight: 24000},
//		core.Entity{Name: "Blue", Weight: 23000},
//	)
//	seats, err := core.Apply(req, divisor.Webster()) // [3 2 2]
//
// Every method returns a vector with one non-negative entry per entity that
// sums to the seat total, or an error.
package apportion
