package event

import "github.com/ecxx/sparsecs/internal/core/ecs"

// RoundCompleted is emitted by the churn system after each round.
type RoundCompleted struct {
	Round     int
	Removed   int
	Destroyed int
	Created   int
	Alive     int
}

// EntitiesExpired reports entities whose lifetime ran out this tick.
type EntitiesExpired struct {
	Entities []ecs.Entity
}

// AuditFailed carries an invariant violation found by the audit system.
type AuditFailed struct {
	Tick uint64
	Err  error
}
