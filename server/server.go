// Package server ties the world registry, worker pool and tick scheduler
// together into a single runnable unit.
package server

import (
	"github.com/mworzala/minestom-go/server/thread"
	"github.com/mworzala/minestom-go/server/world"
)

// Server is a running tick scheduler over a set of Instances. Construct one
// with Config.New.
type Server struct {
	conf Config

	// Registry is where Instances are added and removed. Callers may do so
	// at any time, including while the Server is running; the planner
	// reads the registry fresh every tick.
	Registry *world.Registry

	pool      *thread.Pool
	scheduler *thread.Scheduler
}

// Start launches the worker pool and the tick scheduler's run loop in a new
// goroutine. Start returns immediately; the scheduler keeps running until
// Stop is called.
func (s *Server) Start() {
	s.pool.Start()
	go s.scheduler.Run()
}

// Stop halts the scheduler and the worker pool, blocking until both have
// fully drained.
func (s *Server) Stop() {
	s.scheduler.Stop()
	s.pool.Stop()
}

// IsAlive reports whether the underlying pool is still accepting ticks.
func (s *Server) IsAlive() bool {
	return s.pool.IsAlive()
}

// TickCount returns the number of ticks run since the last catch-up reset.
func (s *Server) TickCount() int64 {
	return s.scheduler.TickCount()
}
