package system

import (
	"time"

	"github.com/ecxx/sparsecs/internal/core/event"
	coresys "github.com/ecxx/sparsecs/internal/core/system"
)

// DispatchSystem delivers last tick's events at the start of each tick.
// Phase 0 (PreUpdate).
type DispatchSystem struct {
	bus       *event.Bus
	delivered int
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.delivered += s.bus.DispatchAll()
}

// Delivered returns the number of events handed to subscribers so far.
func (s *DispatchSystem) Delivered() int { return s.delivered }
