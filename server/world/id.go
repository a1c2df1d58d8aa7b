package world

import "github.com/google/uuid"

// ChunkPos identifies a Chunk by its column coordinate within an Instance.
type ChunkPos struct {
	X, Z int32
}

// chunkID packs a ChunkPos into the 64-bit identifier space the arena
// storage and the monitor shard table key on.
func chunkID(pos ChunkPos) uint64 {
	return uint64(uint32(pos.X))<<32 | uint64(uint32(pos.Z))
}

// uuidID folds a uuid.UUID down to the 64-bit identifier space used by the
// arena storage, taking its low 8 bytes. Collisions are not a correctness
// concern for the arena index (it would simply overwrite a different
// element), but are astronomically unlikely for the UUIDv4 identifiers
// instances and entities are assigned.
func uuidID(id uuid.UUID) uint64 {
	return uint64(id[8])<<56 | uint64(id[9])<<48 | uint64(id[10])<<40 | uint64(id[11])<<32 |
		uint64(id[12])<<24 | uint64(id[13])<<16 | uint64(id[14])<<8 | uint64(id[15])
}
