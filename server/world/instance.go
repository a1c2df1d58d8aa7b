package world

import (
	"time"

	"github.com/google/uuid"
)

// InstanceTicker is implemented by the world-specific behaviour attached to
// an Instance (time-of-day, weather, and so on). What it does is opaque to
// the core, per §1.
type InstanceTicker interface {
	Tick(now time.Time)
}

// Instance is one of the three tickable element kinds (§3): a world. It
// owns the set of Chunks currently loaded for it, keyed by ChunkPos rather
// than held by a slice of pointers (Design Note §9's arena storage, applied
// to the Instance↔Chunk relationship the same way it is applied to
// Chunk↔Entity).
type Instance struct {
	ID uuid.UUID

	chunks *arena[*Chunk]
	behave InstanceTicker

	handle *Handle[*Instance]
}

// NewInstance creates an empty Instance. behave may be nil.
func NewInstance(behave InstanceTicker) *Instance {
	return &Instance{ID: uuid.New(), chunks: newArena[*Chunk](64), behave: behave}
}

// Handle returns the Handle wrapping this Instance.
func (i *Instance) Handle() *Handle[*Instance] { return i.handle }

// LoadChunk registers c as loaded in this Instance, creating the Handle
// that wraps it.
func (i *Instance) LoadChunk(c *Chunk) *Handle[*Chunk] {
	h := NewHandle(chunkID(c.Pos), KindChunk, c)
	c.handle = h
	i.chunks.put(chunkID(c.Pos), h)
	return h
}

// UnloadChunk removes a Chunk's membership in this Instance. Any Entities
// still resident in it are not migrated; the caller is expected to have
// relocated or despawned them first, consistent with §4.5's "Entities
// whose chunk is unloaded mid-tick are skipped" policy.
func (i *Instance) UnloadChunk(pos ChunkPos) {
	i.chunks.delete(chunkID(pos))
}

// Chunks returns the Handles of every Chunk currently loaded in this
// Instance, matching the get_chunks() contract of §6.
func (i *Instance) Chunks() []*Handle[*Chunk] {
	out := make([]*Handle[*Chunk], 0, i.chunks.len())
	i.chunks.each(func(h *Handle[*Chunk]) { out = append(out, h) })
	return out
}

// Chunk resolves a single loaded Chunk by position.
func (i *Instance) Chunk(pos ChunkPos) (*Handle[*Chunk], bool) {
	return i.chunks.get(chunkID(pos))
}

// ChunkEntities returns the Handles of every Entity resident in chunk,
// matching the get_chunk_entities(chunk) contract of §6.
func (i *Instance) ChunkEntities(chunk *Chunk) []*Handle[*Entity] {
	return chunk.Entities()
}

// Tick advances the Instance's own behaviour (time-of-day, weather, and so
// on).
func (i *Instance) Tick(now time.Time) {
	if i.behave != nil {
		i.behave.Tick(now)
	}
}
