package world

import "testing"

func TestRegistryTracksInstances(t *testing.T) {
	r := NewRegistry()
	a := NewInstance(nil)
	b := NewInstance(nil)

	r.AddInstance(a)
	r.AddInstance(b)
	if r.Len() != 2 {
		t.Fatalf("expected 2 instances, got %d", r.Len())
	}

	r.RemoveInstance(a)
	if r.Len() != 1 {
		t.Fatalf("expected 1 instance after removal, got %d", r.Len())
	}
	handles := r.Instances()
	if len(handles) != 1 || handles[0].UnsafeUnwrap() != b {
		t.Fatal("remaining instance is not b")
	}
}

func TestInstanceChunkEntityMembership(t *testing.T) {
	inst := NewInstance(nil)
	c := NewChunk(ChunkPos{X: 1, Z: 2}, nil)
	inst.LoadChunk(c)

	if got, ok := inst.Chunk(ChunkPos{X: 1, Z: 2}); !ok || got.UnsafeUnwrap() != c {
		t.Fatal("chunk not retrievable after load")
	}

	e := newTestEntity()
	c.AddEntity(e)
	if len(c.Entities()) != 1 {
		t.Fatalf("expected 1 entity in chunk, got %d", len(c.Entities()))
	}
	if len(inst.ChunkEntities(c)) != 1 {
		t.Fatal("ChunkEntities did not see the added entity")
	}

	c.RemoveEntity(e)
	if len(c.Entities()) != 0 {
		t.Fatal("entity still present after removal")
	}

	inst.UnloadChunk(c.Pos)
	if _, ok := inst.Chunk(c.Pos); ok {
		t.Fatal("chunk still present after unload")
	}
}

func TestArenaSlotReuseDoesNotCorruptLookups(t *testing.T) {
	inst := NewInstance(nil)

	p1 := ChunkPos{X: 1, Z: 1}
	p3 := ChunkPos{X: 3, Z: 3}

	c1 := NewChunk(p1, nil)
	inst.LoadChunk(c1)
	inst.UnloadChunk(p1)

	// Loading p3 now is free to reuse whatever slot p1 vacated.
	c3 := NewChunk(p3, nil)
	inst.LoadChunk(c3)

	if _, ok := inst.Chunk(p1); ok {
		t.Fatal("p1 should not be retrievable after unload, even if its slot was recycled")
	}
	if got, ok := inst.Chunk(p3); !ok || got.UnsafeUnwrap() != c3 {
		t.Fatal("p3 not retrievable after load")
	}

	// Re-loading p1 must not clobber p3's chunk, even if they now collide
	// on the same underlying slot.
	c1b := NewChunk(p1, nil)
	inst.LoadChunk(c1b)

	if got, ok := inst.Chunk(p1); !ok || got.UnsafeUnwrap() != c1b {
		t.Fatal("p1 not retrievable after reload")
	}
	if got, ok := inst.Chunk(p3); !ok || got.UnsafeUnwrap() != c3 {
		t.Fatal("reloading p1 corrupted p3's entry")
	}
}
