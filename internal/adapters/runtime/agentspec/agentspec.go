// Package agentspec describes the container every runtime starts for an
// agent: its environment and the labels that mark it as managed.
package agentspec

import (
	"errors"
	"strings"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
)

const (
	LabelManaged = "io.azscaler.managed"
	LabelPool    = "io.azscaler.pool"

	EnvAccount = "VSTS_ACCOUNT"
	EnvToken   = "VSTS_TOKEN"
	EnvPool    = "VSTS_POOL"
	EnvAgent   = "VSTS_AGENT"
	EnvAgentOS = "VSTS_AGENT_OS"

	agentOS = "linux"
)

// Registration holds what an agent needs to join a pool.
type Registration struct {
	Organization string
	Token        string
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.Organization) == "" {
		return errors.New("agent registration requires an organization")
	}
	if strings.TrimSpace(r.Token) == "" {
		return errors.New("agent registration requires a token")
	}
	return nil
}

// Env returns the agent environment as KEY=VALUE pairs in a stable order.
func (r Registration) Env(identity domain.AgentIdentity, poolName string) []string {
	return []string{
		EnvAccount + "=" + r.Organization,
		EnvToken + "=" + r.Token,
		EnvPool + "=" + poolName,
		EnvAgent + "=" + identity.String(),
		EnvAgentOS + "=" + agentOS,
	}
}

func Labels(poolName string) map[string]string {
	return map[string]string{
		LabelManaged: "true",
		LabelPool:    poolName,
	}
}
