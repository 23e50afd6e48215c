package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/enemycore/combat"
	"github.com/milk9111/enemycore/ecs"
	"github.com/milk9111/enemycore/ecs/component"
	"github.com/milk9111/enemycore/logging"
)

// StatusEffectSystem suppresses the player's sprint while they stand in a zone
// whose guard is hunting them. A status message is sent only when the
// suppression changes.
type StatusEffectSystem struct {
	controller combat.PlayerController
	logger     *zap.Logger
}

func NewStatusEffectSystem(controller combat.PlayerController, logger *zap.Logger) *StatusEffectSystem {
	return &StatusEffectSystem{controller: controller, logger: logging.OrNop(logger)}
}

func (s *StatusEffectSystem) SetController(c combat.PlayerController) { s.controller = c }

func (s *StatusEffectSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	status, ok := ecs.Singleton(w, component.PlayerStatusComponent)
	if !ok {
		return
	}
	obs, ok := playerObservation(w)
	zones := zoneRects(w)

	suppressed := false
	zoneID := ""
	if ok {
		ecs.ForEach2(w, component.GuardComponent, component.AIStateComponent,
			func(e ecs.Entity, g *component.Guard, st *component.AIState) {
				if suppressed {
					return
				}
				if h, ok := ecs.Get(w, e, component.HealthComponent); ok && !h.Alive() {
					return
				}
				if st.Current != component.StateChase && st.Current != component.StateRecover && st.Current != component.StateReturn {
					return
				}
				if zone, ok := zones[g.ZoneID]; ok && zone.Contains(obs.Position) {
					suppressed = true
					zoneID = g.ZoneID
				}
			})
	}

	if suppressed == status.SprintSuppressed {
		return
	}
	status.SprintSuppressed = suppressed
	if s.controller != nil {
		s.controller.SetSprintSuppressed(suppressed)
	}
	w.Events().Push(ecs.Event{
		Type: ecs.EventStatusEffect,
		Data: component.StatusEffect{SprintSuppressed: suppressed, ZoneID: zoneID},
	})
	s.logger.Debug("sprint suppression changed",
		zap.Bool("suppressed", suppressed),
		zap.String("zone", zoneID),
	)
}
