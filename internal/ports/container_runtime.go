package ports

import (
	"context"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
)

type ContainerRuntime interface {
	CreateAgent(ctx context.Context, identity domain.AgentIdentity, poolName, image string) error
	RemoveAgent(ctx context.Context, identity domain.AgentIdentity) error
}
