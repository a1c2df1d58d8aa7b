package thread

import (
	"fmt"
	"time"
)

// Batch is the unit a Worker pulls off its queue: a run of Work Items
// assigned together by the Batch Planner, plus the Sequence number the
// planner stamped it with for diagnostics (§4.5, supplemented per the
// per-tick walk order the original thread provider exposed but never
// reported anywhere).
type Batch struct {
	Sequence int64
	Items    []WorkItem
	Cost     Cost
}

// run executes every Item in order, recovering from a panic in one Item so
// the rest of the Batch still runs (§7.1, S6: worker failure isolation).
// Each failure — panic or returned error path via run itself panicking — is
// reported to sink rather than propagated, mirroring the teacher's
// generatorWorker recover-and-continue loop.
func (b Batch) run(now time.Time, sink ExceptionSink) {
	for _, item := range b.Items {
		runItem(item, b.Sequence, now, sink)
	}
}

func runItem(item WorkItem, seq int64, now time.Time, sink ExceptionSink) {
	defer func() {
		if r := recover(); r != nil {
			sink.Handle(fmt.Errorf("tick %s (batch %d item, kind=%s): %v", now.Format(time.RFC3339Nano), seq, item.Kind(), r))
		}
	}()
	item.run(now)
}
