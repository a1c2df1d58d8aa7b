package world

import "sync"

// Registry is the replacement for the original source's global
// InstanceManager singleton (Design Note §9): it is a plain value passed by
// reference to whoever needs to enumerate Instances — principally the Batch
// Planner — rather than process-wide state reached through a static
// accessor.
type Registry struct {
	mu        sync.RWMutex
	instances *arena[*Instance]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{instances: newArena[*Instance](16)}
}

// AddInstance registers inst, creating the Handle that wraps it.
func (r *Registry) AddInstance(inst *Instance) *Handle[*Instance] {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := NewHandle(uuidID(inst.ID), KindInstance, inst)
	inst.handle = h
	r.instances.put(uuidID(inst.ID), h)
	return h
}

// RemoveInstance unregisters inst. Existing Handles into it remain valid
// for as long as any goroutine still holds one; only the Registry's own
// enumeration stops seeing it.
func (r *Registry) RemoveInstance(inst *Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances.delete(uuidID(inst.ID))
}

// Instances returns the Handles of every registered Instance, in arbitrary
// order. Called once per tick by the Batch Planner.
func (r *Registry) Instances() []*Handle[*Instance] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Handle[*Instance], 0, r.instances.len())
	r.instances.each(func(h *Handle[*Instance]) { out = append(out, h) })
	return out
}

// Len returns the number of registered Instances.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.instances.len()
}
