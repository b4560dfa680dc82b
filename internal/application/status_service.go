package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
)

type PoolStatus struct {
	PoolName  string
	PoolID    domain.PoolID
	Bounds    domain.ScalingBounds
	Snapshot  domain.PoolSnapshot
	IdleAgent *domain.IdleAgentRef
	Decision  domain.Decision
}

// StatusService answers one-shot questions about a pool without acting on it.
type StatusService struct {
	gateway ports.PoolGateway
	clock   ports.Clock
}

func NewStatusService(gateway ports.PoolGateway, clock ports.Clock) *StatusService {
	if clock == nil {
		clock = ports.SystemClock()
	}

	return &StatusService{gateway: gateway, clock: clock}
}

// GetStatus reads the pool and previews the decision the scaling loop would
// take on the same observation. Unlike the loop, read failures are returned.
func (s *StatusService) GetStatus(ctx context.Context, poolName string, bounds domain.ScalingBounds) (PoolStatus, error) {
	if err := bounds.Validate(); err != nil {
		return PoolStatus{}, err
	}

	pool, err := s.gateway.ResolvePool(ctx, poolName)
	if err != nil {
		return PoolStatus{}, fmt.Errorf("resolve pool %q: %w", poolName, err)
	}

	online, onlineErr := s.gateway.CountOnlineAgents(ctx, pool)
	waiting, waitingErr := s.gateway.CountWaitingJobs(ctx, pool)
	if err := errors.Join(onlineErr, waitingErr); err != nil {
		return PoolStatus{}, fmt.Errorf("read pool %q: %w", poolName, err)
	}

	idle, err := s.gateway.FindIdleAgent(ctx, pool)
	if err != nil {
		return PoolStatus{}, fmt.Errorf("find idle agent in pool %q: %w", poolName, err)
	}

	snapshot := domain.PoolSnapshot{
		OnlineAgents: online,
		WaitingJobs:  waiting,
		ObservedAt:   s.clock.Now(),
	}

	return PoolStatus{
		PoolName:  poolName,
		PoolID:    pool,
		Bounds:    bounds,
		Snapshot:  snapshot,
		IdleAgent: idle,
		Decision:  domain.Decide(snapshot, bounds),
	}, nil
}
