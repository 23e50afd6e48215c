package component

// Health never drops below zero; an enemy at zero is removed at end of tick.
type Health struct {
	Current float64
	Max     float64
}

func (h Health) Alive() bool {
	return h.Current > 0
}

// Damage subtracts amount, clamping at zero. It reports whether the hit was lethal.
func (h *Health) Damage(amount float64) bool {
	if h == nil || amount <= 0 || h.Current <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		return true
	}
	return false
}

var HealthComponent = NewComponent[Health]()
