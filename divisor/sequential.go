package divisor

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/apportion/core"
	"github.com/katalvlaran/apportion/rounding"
)

// Sequential hands out seats one at a time, each to the entity with the
// largest priority w / Signpost(n), where n is the entity's current count.
// This is the priority-list form of a divisor method (the way the U.S.
// Census Bureau computes Huntington-Hill).
//
// Policies whose Signpost(0) is zero (GeometricMean, Ceil) first grant one
// seat to every entity with positive weight; if that alone exceeds K the
// request is infeasible and core.ErrConvergence is returned.
//
// Equal priorities go to the entity that appears first in the input, so the
// result is always defined, including on plateaus where Search fails.
//
// Complexity: O(n + K·log n) time, O(n) memory.
func Sequential(entities []core.Entity, seats int, policy rounding.Policy, opts ...Option) (Solution, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return Solution{}, err
	}

	return sequential(entities, seats, policy, o)
}

func sequential(entities []core.Entity, seats int, policy rounding.Policy, o Options) (Solution, error) {
	if !policy.Valid() {
		return Solution{}, fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
	}
	if _, err := core.Validate(entities, seats); err != nil {
		return Solution{}, err
	}

	if need := firstSeats(entities, policy); need > seats {
		return Solution{}, fmt.Errorf("%s: %d entities need a first seat but only %d seats exist: %w",
			policy, need, seats, core.ErrConvergence)
	}

	var (
		sol      = Solution{Seats: make(core.SeatVector, len(entities)), Phase: PhaseSequential}
		assigned int
		freeSeat = policy.Signpost(0) == 0
	)
	if freeSeat {
		for i, e := range entities {
			if e.Weight > 0 {
				sol.Seats[i] = 1
				assigned++
			}
		}
	}

	pq := make(priorityQueue, 0, len(entities))
	for i, e := range entities {
		if freeSeat && e.Weight == 0 {
			continue // never earns a seat: its priority stays 0/0
		}
		pq = append(pq, &claim{index: i, priority: priority(e.Weight, policy, sol.Seats[i])})
	}
	heap.Init(&pq)

	for assigned < seats {
		top := pq[0]
		sol.Seats[top.index]++
		assigned++
		sol.Divisor = top.priority
		o.OnStep(Step{Phase: PhaseSequential, Iteration: assigned, Divisor: top.priority, Total: assigned})

		top.priority = priority(entities[top.index].Weight, policy, sol.Seats[top.index])
		heap.Fix(&pq, 0)
	}

	return sol, nil
}

// firstSeats counts the seats a policy grants before any comparison: one per
// positive weight when Signpost(0) is zero, none otherwise.
func firstSeats(entities []core.Entity, policy rounding.Policy) int {
	if policy.Signpost(0) != 0 {
		return 0
	}
	var n int
	for _, e := range entities {
		if e.Weight > 0 {
			n++
		}
	}

	return n
}

func priority(w float64, policy rounding.Policy, n int) float64 {
	return w / policy.Signpost(n)
}

// claim is one entity's bid for its next seat.
type claim struct {
	index    int
	priority float64
}

// priorityQueue is a max-heap of claims; equal priorities favour the lower index.
type priorityQueue []*claim

// Len returns the number of items in the heap.
func (pq priorityQueue) Len() int { return len(pq) }

// Less orders by priority descending, then by index ascending.
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority > pq[j].priority
	}

	return pq[i].index < pq[j].index
}

// Swap swaps two elements in the heap.
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x onto the heap; x must be a *claim.
func (pq *priorityQueue) Push(x any) { *pq = append(*pq, x.(*claim)) }

// Pop removes and returns the last element.
func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
