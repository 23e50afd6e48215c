package ecs

// SparseSet is a cache-friendly storage for components keyed by entity slot.
// Values live in a dense slice so iteration walks contiguous memory; the sparse
// index maps a slot to its dense position.
type SparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []T
	sparse        []int
}

// Has returns true if the entity has a value in the set.
func (s *SparseSet[T]) Has(e Entity) bool {
	id := int(e.id())
	if s == nil || id <= 0 || id-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx] == e
}

// Get returns a pointer into dense storage. The pointer is invalidated by the
// next Set or Remove on this set.
func (s *SparseSet[T]) Get(e Entity) (*T, bool) {
	if !s.Has(e) {
		return nil, false
	}
	return &s.denseValues[s.sparse[int(e.id())-1]], true
}

// Set inserts or updates the value for e.
func (s *SparseSet[T]) Set(e Entity, v T) {
	id := int(e.id())
	if s == nil || id <= 0 {
		return
	}
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.sparse[id-1]; idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx].id() == e.id() {
		// Same slot: either an update or a stale generation being replaced.
		s.denseEntities[idx] = e
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove deletes the value for e if present.
func (s *SparseSet[T]) Remove(e Entity) bool {
	if !s.Has(e) {
		return false
	}
	id := int(e.id())
	idx := s.sparse[id-1]
	last := len(s.denseEntities) - 1
	lastEnt := s.denseEntities[last]

	s.denseEntities[idx] = lastEnt
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[int(lastEnt.id())-1] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
	return true
}

// Len returns the number of stored values.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Entities returns the dense entity list. Callers must not modify it.
func (s *SparseSet[T]) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}

func (s *SparseSet[T]) removeAny(e Entity) bool { return s.Remove(e) }

func (s *SparseSet[T]) hasAny(e Entity) bool { return s.Has(e) }

// store is the type-erased view of a SparseSet used by the world.
type store interface {
	removeAny(e Entity) bool
	hasAny(e Entity) bool
}
