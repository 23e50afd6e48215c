package ecs

import "github.com/milk9111/enemycore/ecs/component"

func Add[T any](w *World, e Entity, h component.ComponentHandle[T], value T) error {
	if !h.Valid() {
		return ErrInvalidHandle
	}
	if !w.IsAlive(e) {
		return ErrEntityNotAlive
	}
	setFor(w, h, true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	return setFor(w, h, false).Remove(e)
}

func Has[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	return setFor(w, h, false).Has(e)
}

// Get returns a pointer into the component storage. Mutations through the
// pointer are visible to later readers; the pointer must not be kept across an
// Add or Remove of the same component kind.
func Get[T any](w *World, e Entity, h component.ComponentHandle[T]) (*T, bool) {
	return setFor(w, h, false).Get(e)
}

// Count returns how many entities carry the component.
func Count[T any](w *World, h component.ComponentHandle[T]) int {
	return setFor(w, h, false).Len()
}

// First returns the first entity carrying the component, in dense order.
func First[T any](w *World, h component.ComponentHandle[T]) (Entity, bool) {
	s := setFor(w, h, false)
	if s.Len() == 0 {
		return 0, false
	}
	return s.Entities()[0], true
}

// Singleton returns the value of a component expected on exactly one entity.
func Singleton[T any](w *World, h component.ComponentHandle[T]) (*T, bool) {
	e, ok := First(w, h)
	if !ok {
		return nil, false
	}
	return Get(w, e, h)
}

// ForEach visits every entity with component A in dense order. fn must not add
// or remove components of kind A.
func ForEach[A any](w *World, ha component.ComponentHandle[A], fn func(Entity, *A)) {
	sa := setFor(w, ha, false)
	if sa.Len() == 0 || fn == nil {
		return
	}
	for i := 0; i < len(sa.denseEntities); i++ {
		fn(sa.denseEntities[i], &sa.denseValues[i])
	}
}

func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	sb := setFor(w, hb, false)
	if sb.Len() == 0 {
		return
	}
	ForEach(w, ha, func(e Entity, a *A) {
		b, ok := sb.Get(e)
		if !ok {
			return
		}
		fn(e, a, b)
	})
}

func ForEach3[A, B, C any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], hc component.ComponentHandle[C], fn func(Entity, *A, *B, *C)) {
	sc := setFor(w, hc, false)
	if sc.Len() == 0 {
		return
	}
	ForEach2(w, ha, hb, func(e Entity, a *A, b *B) {
		c, ok := sc.Get(e)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

// Query returns the entities that carry component A, in dense order. The
// slice is a copy and is safe to hold while the world changes.
func Query[A any](w *World, ha component.ComponentHandle[A]) []Entity {
	sa := setFor(w, ha, false)
	if sa.Len() == 0 {
		return nil
	}
	return append([]Entity(nil), sa.Entities()...)
}
