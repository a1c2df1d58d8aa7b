package world

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Dispatcher is the minimal surface a Worker exposes to the acquisition
// protocol: an identity to compare against the same-thread fast path, an
// acquisition queue to deposit deferred callbacks into, and a pair of hooks
// the protocol uses to tell a coordinating Pool that this Dispatcher is
// momentarily blocked servicing a foreign element mid-batch. thread.Worker
// implements this; it lives here, not in package thread, so that Handle's
// acquisition logic never needs to import the scheduling package.
type Dispatcher interface {
	// ID uniquely and stably identifies the Dispatcher for the life of the
	// pool it belongs to.
	ID() int
	// Enqueue deposits fn onto the Dispatcher's acquisition queue. fn runs
	// on the Dispatcher's own goroutine at its next between-batch drain.
	Enqueue(fn func())
	// BeginForeignWait and EndForeignWait bracket a cross-worker acquire
	// performed by this Dispatcher while it is executing a batch, letting a
	// coordinator track in-flight foreign interactions (the completion
	// phaser described for Acquisition Data).
	BeginForeignWait()
	EndForeignWait()
}

// Handler is the small control block every Handle embeds: an atomic
// reference to the Dispatcher currently responsible for the Handle's
// element this tick. It is written only by the Batch Planner and read by
// any thread during the tick, mirroring the handler_wrap.go pattern of an
// atomically-swapped control value that any goroutine may read lock-free.
type Handler struct {
	owner atomic.Pointer[dispatcherBox]
}

type dispatcherBox struct {
	d Dispatcher
}

// CurrentWorker returns the Dispatcher currently owning the Handle's
// element, or nil if none has been published yet (e.g. before the first
// tick has run).
func (h *Handler) CurrentWorker() Dispatcher {
	if b := h.owner.Load(); b != nil {
		return b.d
	}
	return nil
}

// RefreshWorker publishes d as the new owner. Only the Batch Planner calls
// this, once per tick, before any Work Item of that tick executes.
func (h *Handler) RefreshWorker(d Dispatcher) {
	h.owner.Store(&dispatcherBox{d: d})
}

const monitorShardCount = 256

// monitorTable is a sharded mutex table keyed by element identity. Two
// elements whose IDs hash to the same shard will contend unnecessarily, but
// correctness never requires more than this: locking a shard always locks a
// superset of the one element that actually needs exclusion.
type monitorTable struct {
	shards [monitorShardCount]sync.Mutex
}

var monitors monitorTable

func monitorFor(id uint64) *sync.Mutex {
	var buf [8]byte
	buf[0] = byte(id)
	buf[1] = byte(id >> 8)
	buf[2] = byte(id >> 16)
	buf[3] = byte(id >> 24)
	buf[4] = byte(id >> 32)
	buf[5] = byte(id >> 40)
	buf[6] = byte(id >> 48)
	buf[7] = byte(id >> 56)
	shard := xxhash.Sum64(buf[:]) % monitorShardCount
	return &monitors.shards[shard]
}
