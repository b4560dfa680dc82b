package domain

import (
	"fmt"
	"time"
)

// PoolID identifies an agent pool in the remote organization. It is resolved
// once per run from the pool's display name.
type PoolID int

type ScalingBounds struct {
	MinAgents    int
	MaxAgents    int
	PollInterval time.Duration
}

func (b ScalingBounds) Validate() error {
	if b.MinAgents <= 0 {
		return fmt.Errorf("%w: minimum number of agents must be greater than zero", ErrInvalidBounds)
	}
	if b.MaxAgents <= 0 {
		return fmt.Errorf("%w: maximum number of agents must be greater than zero", ErrInvalidBounds)
	}
	if b.MinAgents > b.MaxAgents {
		return fmt.Errorf("%w: minimum agents (%d) exceeds maximum agents (%d)", ErrInvalidBounds, b.MinAgents, b.MaxAgents)
	}
	if b.PollInterval <= 0 {
		return fmt.Errorf("%w: polling interval must be greater than zero", ErrInvalidBounds)
	}

	return nil
}

// PoolSnapshot is one observation of a pool. The two counts come from
// separate reads and may be mutually inconsistent.
type PoolSnapshot struct {
	OnlineAgents int
	WaitingJobs  int
	ObservedAt   time.Time
}
