package application

import (
	"fmt"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
)

// AgentNamer generates the identity of a new agent. Identities are the only
// link between a pool registration and its container, so they must not
// collide with live agents.
type AgentNamer func() (domain.AgentIdentity, error)

const (
	NameStyleToken   = "token"
	NameStylePetname = "petname"
)

// TokenNamer yields names like "azdo-agent-1a2b3c4d".
func TokenNamer(prefix string) AgentNamer {
	return func() (domain.AgentIdentity, error) {
		return domain.NewAgentIdentity(prefix, randomToken(8))
	}
}

// PetnameNamer yields names like "azdo-agent-brave-otter-1a2b".
func PetnameNamer(prefix string) AgentNamer {
	return func() (domain.AgentIdentity, error) {
		return domain.NewAgentIdentity(prefix, petname.Generate(2, "-"), randomToken(4))
	}
}

func NamerForStyle(style, prefix string) (AgentNamer, error) {
	if err := domain.ValidateAgentNamePrefix(prefix); err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", NameStyleToken:
		return TokenNamer(prefix), nil
	case NameStylePetname:
		return PetnameNamer(prefix), nil
	default:
		return nil, fmt.Errorf("unsupported agent name style %q", style)
	}
}

func randomToken(n int) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return token[:n]
}
