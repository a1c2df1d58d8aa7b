package world

import "time"

// ChunkTicker is implemented by the region-specific behaviour attached to a
// Chunk (block updates, liquid flow, and so on). What it does is opaque to
// the core, per §1.
type ChunkTicker interface {
	Tick(now time.Time, inst *Instance)
}

// Chunk is one of the three tickable element kinds (§3). It owns the set of
// Entities currently resident within it, keyed by ID rather than held by
// pointer (Design Note §9).
type Chunk struct {
	Pos ChunkPos

	entities *arena[*Entity]
	behave   ChunkTicker

	handle *Handle[*Chunk]
}

// NewChunk creates an empty Chunk at pos. behave may be nil.
func NewChunk(pos ChunkPos, behave ChunkTicker) *Chunk {
	return &Chunk{Pos: pos, entities: newArena[*Entity](8), behave: behave}
}

// Handle returns the Handle wrapping this Chunk.
func (c *Chunk) Handle() *Handle[*Chunk] { return c.handle }

// GetAcquiredElement returns the Handle wrapping this Chunk, matching the
// get_acquired_element() contract of §6.
func (c *Chunk) GetAcquiredElement() *Handle[*Chunk] { return c.handle }

// AddEntity registers ent as resident in this Chunk, creating the Handle
// that wraps it if ent has not yet been wrapped. Only ever called between
// ticks, on the Chunk's owning Worker, per §3/§9.
func (c *Chunk) AddEntity(ent *Entity) *Handle[*Entity] {
	ent.ChunkPos = c.Pos
	h := ent.handle
	if h == nil {
		h = NewHandle(uuidID(ent.ID), KindEntity, ent)
		ent.handle = h
	}
	c.entities.put(uuidID(ent.ID), h)
	return h
}

// RemoveEntity drops ent's membership in this Chunk. Only ever called
// between ticks, on the Chunk's owning Worker.
func (c *Chunk) RemoveEntity(ent *Entity) {
	c.entities.delete(uuidID(ent.ID))
}

// Entities returns the Handles of every Entity currently resident in this
// Chunk, in arbitrary order.
func (c *Chunk) Entities() []*Handle[*Entity] {
	out := make([]*Handle[*Entity], 0, c.entities.len())
	c.entities.each(func(h *Handle[*Entity]) { out = append(out, h) })
	return out
}

// Tick advances the Chunk's own behaviour (block updates, and so on). inst
// is always the Chunk's owning Instance, resolving the "FIXME: instance
// null" open question from the original source in favour of always passing
// it (documented in DESIGN.md).
func (c *Chunk) Tick(now time.Time, inst *Instance) {
	if c.behave != nil {
		c.behave.Tick(now, inst)
	}
}
