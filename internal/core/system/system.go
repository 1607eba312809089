package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: deliver last tick's events
	PhaseUpdate                  // 1: simulation logic over views
	PhasePostUpdate              // 2: expiry, bookkeeping
	PhaseCleanup                 // 3: destroy queued entities
	PhaseAudit                   // 4: invariant checks
)

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseCleanup:
		return "cleanup"
	case PhaseAudit:
		return "audit"
	}
	return "unknown"
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
