package thread

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mworzala/minestom-go/server/world"
)

// fakeClock lets a test advance the time the Scheduler reads
// deterministically, the same substitution the teacher makes for any other
// wall-clock-dependent component under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func emptyPlanner(t *testing.T) *BatchPlanner {
	t.Helper()
	return NewBatchPlanner(world.NewRegistry(), DefaultCosts(), nil, PlannerObserver{}, false)
}

func TestSchedulerTicksAtTargetRate(t *testing.T) {
	pool := newTestPool(t, 1, emptyPlanner(t))
	clock := newFakeClock(time.Unix(0, 0))
	sched := NewScheduler(pool, clock, 20, 100, 0, NewSlogExceptionSink(nil))

	go sched.Run()
	t.Cleanup(sched.Stop)

	// Advance the fake clock one tick interval per step. A real sleep in
	// hybridWait lasts at most half a tick interval, so the clock moves on
	// by far less than the 100-tick catch-up window meanwhile and no reset
	// zeroes TickCount.
	deadline := time.After(time.Second)
	for sched.TickCount() < 5 {
		clock.advance(time.Second / 20)
		select {
		case <-deadline:
			t.Fatalf("scheduler only reached %d ticks", sched.TickCount())
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestSchedulerCatchUpReset(t *testing.T) {
	pool := newTestPool(t, 1, emptyPlanner(t))
	clock := newFakeClock(time.Unix(0, 0))
	sched := NewScheduler(pool, clock, 20, 2, 0, NewSlogExceptionSink(nil))

	go sched.Run()
	t.Cleanup(sched.Stop)

	// Keep jumping the clock a second at a time, so the loop falls
	// unambiguously more than maxCatchUpTicks behind its schedule whenever
	// it read its baseline.
	deadline := time.After(time.Second)
	for sched.Resets() == 0 {
		clock.advance(time.Second)
		select {
		case <-deadline:
			t.Fatal("expected at least one catch-up reset")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestSchedulerRecoversFromPanicInTick(t *testing.T) {
	reg := world.NewRegistry()
	planner := NewBatchPlanner(reg, DefaultCosts(), nil, PlannerObserver{}, false)
	pool := newTestPool(t, 1, planner)

	var calls atomic.Int64
	inst := world.NewInstance(tickerFunc2(func(time.Time) {
		n := calls.Add(1)
		if n == 1 {
			panic("boom")
		}
	}))
	reg.AddInstance(inst)

	clock := newFakeClock(time.Unix(0, 0))
	sched := NewScheduler(pool, clock, 20, 10, 0, NewSlogExceptionSink(nil))

	go sched.Run()
	t.Cleanup(sched.Stop)

	deadline := time.After(time.Second)
	for calls.Load() < 3 {
		clock.advance(time.Second / 20)
		select {
		case <-deadline:
			t.Fatalf("scheduler stopped making progress after a panic, calls=%d", calls.Load())
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

type tickerFunc2 func(time.Time)

func (f tickerFunc2) Tick(now time.Time) { f(now) }
