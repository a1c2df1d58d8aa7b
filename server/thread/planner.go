package thread

import (
	"time"

	"github.com/mworzala/minestom-go/server/world"
	"github.com/segmentio/fasthash/fnv1a"
)

// EntityFilter lets a caller skip ticking certain Entities without forking
// the planner — the supplemented equivalent of the original per-instance
// thread provider's unused onEntityXxx lifecycle hooks, narrowed to the one
// hook that actually changes scheduling. A nil filter ticks every Entity.
type EntityFilter func(h *world.Handle[*world.Entity]) bool

// PlannerObserver is notified as the BatchPlanner walks the registry,
// mirroring the per-instance thread provider's onInstanceCreate/onChunkLoad
// stubs — present in the original but never wired to anything. Any method
// may be nil.
type PlannerObserver struct {
	OnInstance func(h *world.Handle[*world.Instance])
	OnChunk    func(h *world.Handle[*world.Chunk])
	OnEntity   func(h *world.Handle[*world.Entity])
}

// Costs holds the per-Kind Cost estimates §3 calls a configuration detail
// rather than a computed value.
type Costs struct {
	Instance Cost
	Chunk    Cost
	Entity   Cost
}

// DefaultCosts matches the "5 for each" default the spec names.
func DefaultCosts() Costs {
	return Costs{Instance: 5, Chunk: 5, Entity: 5}
}

// BatchPlanner walks a Registry once per tick and assigns every tickable
// Element to exactly one Worker, least-loaded first (§4.5).
type BatchPlanner struct {
	registry *world.Registry
	costs    Costs
	filter   EntityFilter
	observer PlannerObserver
	strict   bool

	sequence int64
}

// NewBatchPlanner constructs a BatchPlanner over registry. strict enables
// the debug double-schedule guard described in §8 invariant 3: when set,
// Plan panics if the same Element is assigned twice within one tick.
func NewBatchPlanner(registry *world.Registry, costs Costs, filter EntityFilter, observer PlannerObserver, strict bool) *BatchPlanner {
	return &BatchPlanner{registry: registry, costs: costs, filter: filter, observer: observer, strict: strict}
}

// Plan builds one Batch per Instance and assigns it to the least-loaded
// Worker (§4.5 steps 1-6). RefreshWorker is called on every Handle in the
// Batch before it is pushed, publishing the new owner so same-thread
// Acquire calls from inside this tick's run take the fast path (§5.1).
func (p *BatchPlanner) Plan(now time.Time, workers []*Worker) {
	var seen map[uint64]struct{}
	if p.strict {
		seen = make(map[uint64]struct{})
	}

	for _, instHandle := range p.registry.Instances() {
		if p.observer.OnInstance != nil {
			p.observer.OnInstance(instHandle)
		}
		inst := instHandle.UnsafeUnwrap()

		items := make([]WorkItem, 0, 8)
		items = append(items, p.instanceItem(instHandle, inst))

		for _, chunkHandle := range inst.Chunks() {
			if p.observer.OnChunk != nil {
				p.observer.OnChunk(chunkHandle)
			}
			chunk := chunkHandle.UnsafeUnwrap()
			items = append(items, p.chunkItem(chunkHandle, chunk, inst))

			for _, entHandle := range chunk.Entities() {
				if p.filter != nil && !p.filter(entHandle) {
					continue
				}
				if p.observer.OnEntity != nil {
					p.observer.OnEntity(entHandle)
				}
				items = append(items, p.entityItem(entHandle))
			}
		}

		if p.strict {
			for _, it := range items {
				key := it.Handle().ID()
				if it.Kind() == world.KindChunk {
					// Chunk ids are packed coordinates, unique only within
					// their Instance.
					key ^= instHandle.ID()
				}
				h := fnv1a.HashUint64(key)
				if _, dup := seen[h]; dup {
					panic("thread: element scheduled twice in the same tick")
				}
				seen[h] = struct{}{}
			}
		}

		var cost Cost
		for _, it := range items {
			cost += it.Cost()
		}

		costs := make([]Cost, len(workers))
		for i, w := range workers {
			costs[i] = w.Cost()
		}
		idx := minCostIndex(costs, CostFull)
		chosen := workers[idx]

		for _, it := range items {
			it.Handle().Handler().RefreshWorker(chosen)
		}

		p.sequence++
		chosen.addCost(cost)
		chosen.pushBatch(Batch{Sequence: p.sequence, Items: items, Cost: cost})
	}
}

func (p *BatchPlanner) instanceItem(h *world.Handle[*world.Instance], inst *world.Instance) WorkItem {
	return NewWorkItem(h, world.KindInstance, p.costs.Instance, func(now time.Time) {
		inst.Tick(now)
	})
}

func (p *BatchPlanner) chunkItem(h *world.Handle[*world.Chunk], chunk *world.Chunk, inst *world.Instance) WorkItem {
	return NewWorkItem(h, world.KindChunk, p.costs.Chunk, func(now time.Time) {
		chunk.Tick(now, inst)
	})
}

func (p *BatchPlanner) entityItem(h *world.Handle[*world.Entity]) WorkItem {
	ent := h.UnsafeUnwrap()
	return NewWorkItem(h, world.KindEntity, p.costs.Entity, func(now time.Time) {
		ent.Tick(now)
	})
}
