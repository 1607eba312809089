package system

import (
	"time"

	"github.com/ecxx/sparsecs/internal/core/ecs"
	coresys "github.com/ecxx/sparsecs/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 3 (Cleanup).
type CleanupSystem struct {
	world     *ecs.World
	destroyed int
}

func NewCleanupSystem(world *ecs.World) *CleanupSystem {
	return &CleanupSystem{world: world}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.destroyed += s.world.FlushDestroyQueue()
}

func (s *CleanupSystem) Destroyed() int { return s.destroyed }
