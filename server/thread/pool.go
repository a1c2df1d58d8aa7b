package thread

import (
	"sync"
	"sync/atomic"
	"time"
)

// Pool is the fixed-size set of Workers a Scheduler drives (§4). It owns
// the cross-worker completion barrier that BeginForeignWait/EndForeignWait
// forward to, and is the thing a Batch Planner consults for per-worker
// running costs.
type Pool struct {
	workers []*Worker

	foreignWG sync.WaitGroup
	alive     atomic.Bool

	planner *BatchPlanner
	sink    ExceptionSink
}

// NewPool constructs a Pool of size workers, each backed by sink for
// recovered errors. size must be at least 1.
func NewPool(size int, planner *BatchPlanner, sink ExceptionSink) *Pool {
	if size < 1 {
		panic("thread: pool size must be at least 1")
	}
	if sink == nil {
		sink = NewSlogExceptionSink(nil)
	}
	p := &Pool{
		workers: make([]*Worker, size),
		planner: planner,
		sink:    sink,
	}
	for i := range p.workers {
		w := NewWorker(i, sink)
		w.pool = p
		p.workers[i] = w
	}
	return p
}

// Start launches every Worker's run loop.
func (p *Pool) Start() {
	for _, w := range p.workers {
		w.start()
	}
	p.alive.Store(true)
}

// Stop signals every Worker to exit and waits for them to drain.
func (p *Pool) Stop() {
	p.alive.Store(false)
	for _, w := range p.workers {
		w.stop()
	}
}

// IsAlive reports whether the Pool is accepting ticks.
func (p *Pool) IsAlive() bool { return p.alive.Load() }

// Workers exposes the Pool's Workers, chiefly so a BatchPlanner can read
// their running cost totals (§4.5).
func (p *Pool) Workers() []*Worker { return p.workers }

// Tick runs one full cycle: plan, dispatch to every Worker with queued
// work, wait for the tick barrier, wait for the cross-worker completion
// barrier, then reset every Worker's cost counter (§4.6).
func (p *Pool) Tick(now time.Time) {
	p.planner.Plan(now, p.workers)

	var wg sync.WaitGroup
	for _, w := range p.workers {
		w.bMu.Lock()
		nonEmpty := len(w.bQueue) > 0
		w.bMu.Unlock()
		if nonEmpty {
			wg.Add(1)
			w.signal(now, &wg)
		} else {
			w.signal(now, nil)
		}
	}
	wg.Wait()
	p.foreignWG.Wait()

	for _, w := range p.workers {
		w.resetCost()
	}
}
