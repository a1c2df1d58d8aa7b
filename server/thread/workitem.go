package thread

import (
	"time"

	"github.com/mworzala/minestom-go/server/world"
)

// WorkItem is the triple described in §3: a Handle, the Kind that
// discriminates which Tick overload it needs, and its estimated Cost. run
// is the tagged-variant dispatch Design Note §9 asks for in place of a
// runtime type switch: the Batch Planner closes over the concrete Handle
// type it already knows about (Instance, Chunk or Entity) when it builds
// the WorkItem, so the Worker never has to ask "what kind of Element is
// this" at execution time beyond reading Kind for logging.
type WorkItem struct {
	handle world.AnyHandle
	kind   world.Kind
	cost   Cost
	run    func(now time.Time)
}

// NewWorkItem constructs a WorkItem. run is invoked by the owning Worker
// exactly once per tick this item is scheduled.
func NewWorkItem(h world.AnyHandle, kind world.Kind, cost Cost, run func(time.Time)) WorkItem {
	return WorkItem{handle: h, kind: kind, cost: cost, run: run}
}

func (w WorkItem) Handle() world.AnyHandle { return w.handle }
func (w WorkItem) Kind() world.Kind { return w.kind }
func (w WorkItem) Cost() Cost { return w.cost }
