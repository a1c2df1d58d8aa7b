package world

import "github.com/brentp/intintmap"

// arena is the arena-style storage Design Note §9 calls for: owners keep a
// set of element IDs rather than a set of pointers, and resolve a Handle by
// ID through a fast int64-keyed index instead of Go's general-purpose
// pointer-keyed map. index maps an element's ID to its slot in slots; each
// slot also carries the id it was last stored under, so a slot recycled for
// a different id is never mistaken for the one the stale index entry was
// pointing at.
type arena[T any] struct {
	index *intintmap.Map
	slots []arenaSlot[T]
	free  []int
}

type arenaSlot[T any] struct {
	id uint64
	h  *Handle[T]
}

func newArena[T any](sizeHint int) *arena[T] {
	if sizeHint < 8 {
		sizeHint = 8
	}
	return &arena[T]{index: intintmap.New(sizeHint, 0.75)}
}

// put stores h under id, replacing any previous handle registered with the
// same id.
func (a *arena[T]) put(id uint64, h *Handle[T]) {
	if slot, ok := a.index.Get(int64(id)); ok {
		if s := a.slots[slot]; s.h != nil && s.id == id {
			a.slots[slot] = arenaSlot[T]{id: id, h: h}
			return
		}
	}
	var slot int
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		slot = len(a.slots)
		a.slots = append(a.slots, arenaSlot[T]{})
	}
	a.slots[slot] = arenaSlot[T]{id: id, h: h}
	a.index.Put(int64(id), int64(slot))
}

// get resolves id to its Handle, if still present. The index may still hold
// a stale entry for id pointing at a slot that has since been freed and
// reused for a different id; the id stored in the slot itself is always the
// tiebreaker.
func (a *arena[T]) get(id uint64) (*Handle[T], bool) {
	slot, ok := a.index.Get(int64(id))
	if !ok {
		return nil, false
	}
	s := a.slots[slot]
	if s.h == nil || s.id != id {
		return nil, false
	}
	return s.h, true
}

// delete removes id from the arena. The slot is cleared and queued for
// reuse; the index keeps its (now stale) entry, which get and put both
// verify against the slot's own id before trusting it.
func (a *arena[T]) delete(id uint64) {
	slot, ok := a.index.Get(int64(id))
	if !ok {
		return
	}
	s := a.slots[slot]
	if s.h == nil || s.id != id {
		return
	}
	a.slots[slot] = arenaSlot[T]{}
	a.free = append(a.free, int(slot))
}

// len returns the number of live handles in the arena.
func (a *arena[T]) len() int {
	return len(a.slots) - len(a.free)
}

// each calls fn for every live handle in the arena, in slot order.
func (a *arena[T]) each(fn func(*Handle[T])) {
	for _, s := range a.slots {
		if s.h != nil {
			fn(s.h)
		}
	}
}
