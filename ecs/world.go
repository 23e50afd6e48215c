package ecs

import (
	"errors"

	"github.com/milk9111/enemycore/ecs/component"
)

var (
	ErrEntityNotAlive = errors.New("ecs: entity not alive")
	ErrInvalidHandle  = errors.New("ecs: invalid component handle")
)

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, their component storage and the per-tick event queue.
// It is not safe for concurrent use; the frame loop is its only mutator.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and recycles its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.removeAny(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns all live entities in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.alive()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func setFor[T any](w *World, h component.ComponentHandle[T], create bool) *SparseSet[T] {
	if w == nil || !h.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	if s, ok := w.stores[h.ID()]; ok {
		return s.(*SparseSet[T])
	}
	if !create {
		return nil
	}
	s := &SparseSet[T]{}
	w.stores[h.ID()] = s
	return s
}
