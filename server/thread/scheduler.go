package thread

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Clock abstracts the time source the Scheduler reads, so tests can decide
// when ticks fall due. The waits in hybridWait still use real timers, sized
// from the Clock's readings. systemClock is the production default.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Scheduler drives a Pool at a fixed cadence (§7). It implements the
// hybrid sleep/spin wait and the catch-up reset described there, in place
// of the exception-as-control-flow the original used to interrupt a
// sleeping scheduler thread — this Scheduler instead watches a stop
// channel, the idiomatic Go substitute for a cancellation token.
type Scheduler struct {
	pool  *Pool
	clock Clock
	sink  ExceptionSink

	tickInterval     time.Duration
	maxCatchUpTicks  int64
	sleepThresholdMs int64

	stop    chan struct{}
	stopped chan struct{}

	tickCount atomic.Int64
	resets    atomic.Int64
}

// NewScheduler constructs a Scheduler. tps is the target ticks per second
// (§7, default 20); maxCatchUpTicks bounds how many ticks behind the loop
// tolerates before resetting its baseline (§7.4); sleepThresholdMs is the
// minimum remaining slack, in milliseconds, worth sleeping for rather than
// spinning (§7.2).
func NewScheduler(pool *Pool, clock Clock, tps int, maxCatchUpTicks, sleepThresholdMs int64, sink ExceptionSink) *Scheduler {
	if tps <= 0 {
		panic("thread: ticks per second must be positive")
	}
	if clock == nil {
		clock = systemClock{}
	}
	if sink == nil {
		sink = NewSlogExceptionSink(nil)
	}
	return &Scheduler{
		pool:             pool,
		clock:            clock,
		sink:             sink,
		tickInterval:     time.Second / time.Duration(tps),
		maxCatchUpTicks:  maxCatchUpTicks,
		sleepThresholdMs: sleepThresholdMs,
		stop:             make(chan struct{}),
		stopped:          make(chan struct{}),
	}
}

// TickCount returns the number of ticks run since the last catch-up reset.
func (s *Scheduler) TickCount() int64 { return s.tickCount.Load() }

// Resets returns how many times the catch-up reset has fired.
func (s *Scheduler) Resets() int64 { return s.resets.Load() }

// Run drives the Pool until Stop is called or the Pool reports not alive.
// It blocks the calling goroutine; callers typically run it in its own
// goroutine.
func (s *Scheduler) Run() {
	defer close(s.stopped)

	base := s.clock.Now()
	var ticks int64

	for s.pool.IsAlive() {
		select {
		case <-s.stop:
			return
		default:
		}

		tickStart := s.clock.Now()
		s.safeTick(tickStart)
		s.tickCount.Add(1)

		ticks++
		next := base.Add(s.tickInterval * time.Duration(ticks))
		now := s.clock.Now()

		if now.After(next.Add(s.tickInterval * time.Duration(s.maxCatchUpTicks))) {
			base = now
			ticks = 0
			s.tickCount.Store(0)
			s.resets.Add(1)
			continue
		}

		s.hybridWait(next)
	}
}

// Stop signals Run to exit and blocks until it has.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.stopped
}

// safeTick recovers a panic out of Pool.Tick so a single bad tick never
// takes the whole scheduler down (§7.3).
func (s *Scheduler) safeTick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.sink.Handle(fmt.Errorf("tick %s (scheduler step): %v", now.Format(time.RFC3339Nano), r))
		}
	}()
	s.pool.Tick(now)
}

// hybridWait sleeps for most of the remaining time until next, then spins
// for the remainder, matching the original's "sleep while slack exceeds a
// threshold, spin for the last sliver" strategy (§7.2). It returns early if
// Stop is called mid-wait.
func (s *Scheduler) hybridWait(next time.Time) {
	for {
		remaining := next.Sub(s.clock.Now())
		if remaining <= 0 {
			return
		}
		remainingMs := remaining.Milliseconds()
		if remainingMs >= s.sleepThresholdMs {
			sleepFor := time.Duration(remainingMs/2) * time.Millisecond
			select {
			case <-s.stop:
				return
			case <-time.After(sleepFor):
			}
			continue
		}
		select {
		case <-s.stop:
			return
		default:
		}
	}
}
