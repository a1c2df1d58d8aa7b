package thread

import "golang.org/x/exp/constraints"

// Cost is the unit a Work Item's estimated price and a Worker's running
// total are measured in (§3). Defaults for Instance/Chunk/Entity are 5; any
// strictly positive value is valid.
type Cost = int64

// CostFull is the sentinel §4.5 step 4 calls out: "must never pick a worker
// whose counter equals INT_MAX". No real Batch should ever push a worker's
// counter this high; it exists purely so a worker can be taken out of
// consideration without removing it from the pool.
const CostFull Cost = 1<<63 - 1

// minCostIndex returns the index of the smallest element of costs that is
// not CostFull, ties broken by the lowest index (the "any stable rule, e.g.
// worker index" of §4.5 step 4). If every element is CostFull, index 0 is
// returned as a last resort — the pool has no spare capacity and the
// planner has nowhere better to put the batch.
func minCostIndex[T constraints.Integer](costs []T, full T) int {
	best := 0
	bestFull := costs[0] == full
	for i := 1; i < len(costs); i++ {
		c := costs[i]
		if c == full {
			continue
		}
		if bestFull || c < costs[best] {
			best = i
			bestFull = false
		}
	}
	return best
}
