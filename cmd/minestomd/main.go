// Command minestomd runs a bare tick scheduler over a handful of synthetic
// Instances, Chunks and Entities, useful for eyeballing load balancing and
// catch-up behavior without wiring up a real game.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mworzala/minestom-go/server"
	"github.com/mworzala/minestom-go/server/world"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	srv := server.Config{
		Log:            log,
		WorkerCount:    4,
		TicksPerSecond: 20,
	}.New()

	for i := 0; i < 3; i++ {
		inst := world.NewInstance(nil)
		srv.Registry.AddInstance(inst)

		for x := int32(0); x < 4; x++ {
			for z := int32(0); z < 4; z++ {
				chunk := world.NewChunk(world.ChunkPos{X: x, Z: z}, nil)
				inst.LoadChunk(chunk)

				for n := 0; n < 5; n++ {
					ent := world.NewEntity(mgl64.Vec3{}, mgl64.Vec3{0.3, 0.9, 0.3}, nil)
					chunk.AddEntity(ent)
				}
			}
		}
	}

	log.Info("starting", "instances", srv.Registry.Len())
	srv.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-sig:
			log.Info("shutting down", "ticks", srv.TickCount())
			srv.Stop()
			return
		case <-ticker.C:
			log.Info("alive", "ticks", srv.TickCount())
		}
	}
}
