package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// AABB is an axis-aligned bounding box, returned by Entity.BoundingBox. The
// scheduler never reads it; it exists because §6 documents
// get_bounding_box() as part of the Entity contract collaborators rely on.
type AABB struct {
	Min, Max mgl64.Vec3
}

// Ticker is implemented by the behaviour attached to an Entity. Entity
// itself is the scheduling-facing type the core walks; what Tick actually
// does is opaque to the core, per §1.
type Ticker interface {
	Tick(now time.Time)
}

// Entity is one of the three tickable element kinds (§3). Its chunk
// membership is maintained by whichever chunk currently claims it; the core
// never holds an owning reference from Entity back to its Chunk, only the
// ID, per Design Note §9 ("back-references from Entity to Chunk/Instance
// are weak").
type Entity struct {
	ID uuid.UUID

	// ChunkPos is the coordinate of the Chunk this Entity currently belongs
	// to. It is read by the Batch Planner's enumeration and written only by
	// the "switch chunk" operation, which the core requires to happen
	// between ticks on the Entity's owning Worker (§3, §9 open question).
	ChunkPos ChunkPos

	half   mgl64.Vec3
	pos    mgl64.Vec3
	behave Ticker

	handle *Handle[*Entity]
}

// NewEntity creates an Entity at pos with the given half-extents (used to
// derive its bounding box) and behaviour. behave may be nil, in which case
// Tick is a no-op.
func NewEntity(pos, halfExtents mgl64.Vec3, behave Ticker) *Entity {
	return &Entity{ID: uuid.New(), pos: pos, half: halfExtents, behave: behave}
}

// Pos returns the Entity's current position.
func (e *Entity) Pos() mgl64.Vec3 { return e.pos }

// SetPos updates the Entity's position. Called between ticks by the "switch
// chunk" collaborator or by the Entity's own behaviour while it holds the
// tick; never called concurrently with Tick on the same Entity.
func (e *Entity) SetPos(pos mgl64.Vec3) { e.pos = pos }

// BoundingBox returns the Entity's current axis-aligned bounding box,
// centred on Pos. Exposed for collaborators (§6); the scheduler itself
// never calls it.
func (e *Entity) BoundingBox() AABB {
	return AABB{Min: e.pos.Sub(e.half), Max: e.pos.Add(e.half)}
}

// Handle returns the Handle wrapping this Entity.
func (e *Entity) Handle() *Handle[*Entity] { return e.handle }

// GetAcquiredElement returns the Handle wrapping this Entity, matching the
// get_acquired_element() contract of §6.
func (e *Entity) GetAcquiredElement() *Handle[*Entity] { return e.handle }

// Tick advances the Entity's behaviour, if any. now is the wall-clock
// instant the owning Worker's current tick started.
func (e *Entity) Tick(now time.Time) {
	if e.behave != nil {
		e.behave.Tick(now)
	}
}
