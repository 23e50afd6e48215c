package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/logging"
)

// EnemyDied is queued when a dead enemy is removed from the world.
type EnemyDied struct {
	Entity    ecs.Entity
	Archetype component.Archetype
}

// CleanupSystem destroys enemies whose health reached zero.
type CleanupSystem struct {
	logger *zap.Logger
}

func NewCleanupSystem(logger *zap.Logger) *CleanupSystem {
	return &CleanupSystem{logger: logging.OrNop(logger)}
}

func (s *CleanupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range ecs.Query(w, component.HealthComponent) {
		h, _ := ecs.Get(w, e, component.HealthComponent)
		if h.Alive() || !ecs.Has(w, e, component.AITagComponent) {
			continue
		}
		var arch component.Archetype
		if st, ok := ecs.Get(w, e, component.StatsComponent); ok {
			arch = st.Archetype
		}
		w.DestroyEntity(e)
		w.Events().Push(ecs.Event{Type: ecs.EventEnemyDied, Data: EnemyDied{Entity: e, Archetype: arch}})
		s.logger.Info("enemy died", zap.Stringer("entity", e), zap.Stringer("archetype", arch))
	}
}
