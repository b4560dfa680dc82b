package ports

import (
	"context"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
)

// PoolGateway reads and mutates one organization's agent pools.
type PoolGateway interface {
	ResolvePool(ctx context.Context, name string) (domain.PoolID, error)
	CountOnlineAgents(ctx context.Context, pool domain.PoolID) (int, error)
	CountWaitingJobs(ctx context.Context, pool domain.PoolID) (int, error)
	// FindIdleAgent returns nil when no agent is idle.
	FindIdleAgent(ctx context.Context, pool domain.PoolID) (*domain.IdleAgentRef, error)
	RemoveAgent(ctx context.Context, pool domain.PoolID, agentID int) error
}
