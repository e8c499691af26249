// Package divisor implements the highest-averages apportionment methods:
// Jefferson, Webster, Huntington-Hill and Adams.
//
// 🚀 What is a divisor method?
//
//	Pick a divisor D and a rounding rule f, give entity i f(w_i / D) seats,
//	and choose D so that the seats add up to exactly K. The rule f is the
//	only difference between the methods (see package rounding).
//
// ✨ Engines:
//   - EngineSearch (default): the interval for D is doubled until it holds
//     at most K seats, then bisected, then refined multiplicatively. Every stage has an iteration cap, so a
//     solve always terminates, either with a witness divisor or with
//     core.ErrConvergence.
//   - EngineSequential: the priority-list form. Seats are awarded one at a
//     time to the largest w / Signpost(n). Ties go to the earlier entity.
//
// ⚙️ Usage:
//
//	m := divisor.HuntingtonHill(divisor.WithMaxRefinements(500))
//	seats, err := core.Apply(req, m)
//	if errors.Is(err, core.ErrConvergence) {
//	    // exact tie: retry with divisor.WithEngine(divisor.EngineSequential)
//	}
//
// Determinism:
//
//	Results are deterministic for a given floating-point environment. The
//	tolerance-bounded search means that inputs sitting exactly on a rounding
//	boundary could, in principle, differ by one seat between platforms with
//	different float rounding behaviour.
//
// Performance:
//
//   - Search:     O((MaxBisections + MaxRefinements) · n)
//   - Sequential: O(n + K·log n)
package divisor
