package server

import (
	"log/slog"

	"github.com/mworzala/minestom-go/server/thread"
	"github.com/mworzala/minestom-go/server/world"
)

// Config contains options for starting the tick scheduler.
type Config struct {
	// Log is the Logger to use for logging information. If nil, Log is set
	// to slog.Default().
	Log *slog.Logger
	// ExceptionSink receives errors recovered from Work Items, acquisition
	// callbacks and scheduler steps. If nil, a sink backed by Log is used.
	ExceptionSink thread.ExceptionSink
	// Clock supplies the current time to the scheduler. If nil, the system
	// clock is used. Tests may supply their own to decide when ticks fall
	// due; the scheduler's waits between readings still use real timers.
	Clock thread.Clock

	// TicksPerSecond is the target tick rate. If 0, it defaults to 20.
	TicksPerSecond int
	// MaxTickCatchUp bounds how many ticks behind schedule the loop
	// tolerates before resetting its baseline. If 0, it defaults to 10.
	MaxTickCatchUp int64
	// SleepThresholdMs is the minimum remaining slack, in milliseconds,
	// worth sleeping for rather than spinning while waiting for the next
	// tick. If 0, it defaults to 2.
	SleepThresholdMs int64

	// WorkerCount is the number of Workers in the pool. If 0, it defaults
	// to 4.
	WorkerCount int
	// InstanceCost, ChunkCost and EntityCost are the per-Kind cost
	// estimates the Batch Planner uses to balance load across Workers. Any
	// left at 0 default to 5.
	InstanceCost, ChunkCost, EntityCost thread.Cost
	// EntityFilter, if set, lets the planner skip ticking certain entities
	// without disabling them registry-wide.
	EntityFilter thread.EntityFilter
	// Observer, if set, is notified as the planner walks the registry.
	Observer thread.PlannerObserver
	// StrictPlanning enables a debug guard that panics if the same element
	// is scheduled twice within a single tick. Leave this off in
	// production; it adds a hash and a map insert per element per tick.
	StrictPlanning bool
}

// New validates conf, filling in defaults, and builds a Server ready to
// Start. It panics if WorkerCount is negative or TicksPerSecond is
// negative, since those indicate a programming error rather than a
// recoverable runtime condition.
func (conf Config) New() *Server {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if conf.TicksPerSecond < 0 {
		panic("config: TicksPerSecond must not be negative")
	}
	if conf.WorkerCount < 0 {
		panic("config: WorkerCount must not be negative")
	}
	if conf.TicksPerSecond == 0 {
		conf.TicksPerSecond = 20
	}
	if conf.MaxTickCatchUp == 0 {
		conf.MaxTickCatchUp = 10
	}
	if conf.SleepThresholdMs == 0 {
		conf.SleepThresholdMs = 2
	}
	if conf.WorkerCount == 0 {
		conf.WorkerCount = 4
		conf.Log.Warn("config: no WorkerCount set, defaulting to 4")
	}
	if conf.InstanceCost == 0 {
		conf.InstanceCost = 5
	}
	if conf.ChunkCost == 0 {
		conf.ChunkCost = 5
	}
	if conf.EntityCost == 0 {
		conf.EntityCost = 5
	}
	if conf.ExceptionSink == nil {
		conf.ExceptionSink = thread.NewSlogExceptionSink(conf.Log)
	}

	registry := world.NewRegistry()
	costs := thread.Costs{Instance: conf.InstanceCost, Chunk: conf.ChunkCost, Entity: conf.EntityCost}
	planner := thread.NewBatchPlanner(registry, costs, conf.EntityFilter, conf.Observer, conf.StrictPlanning)
	pool := thread.NewPool(conf.WorkerCount, planner, conf.ExceptionSink)
	sched := thread.NewScheduler(pool, conf.Clock, conf.TicksPerSecond, conf.MaxTickCatchUp, conf.SleepThresholdMs, conf.ExceptionSink)

	return &Server{
		conf:      conf,
		Registry:  registry,
		pool:      pool,
		scheduler: sched,
	}
}
