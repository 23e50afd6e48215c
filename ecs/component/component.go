package component

import "sync/atomic"

// ComponentID identifies a component kind inside a world.
type ComponentID uint32

// ComponentHandle is the typed key used to add, fetch and iterate a component
// kind. Handles are package-level values created once with NewComponent.
type ComponentHandle[T any] struct {
	id ComponentID
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.id
}

func (h ComponentHandle[T]) Valid() bool {
	return h.id != 0
}

var nextComponentID atomic.Uint32
