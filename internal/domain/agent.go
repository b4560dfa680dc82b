package domain

import (
	"fmt"
	"strings"
)

const DefaultAgentNamePrefix = "azdo-agent"

// AgentIdentity names one logical agent in both the remote pool and the
// container runtime.
type AgentIdentity string

func (i AgentIdentity) String() string {
	return string(i)
}

// NewAgentIdentity joins a prefix with one or more name parts. Empty parts are
// skipped and an empty prefix falls back to DefaultAgentNamePrefix.
func NewAgentIdentity(prefix string, parts ...string) (AgentIdentity, error) {
	prefix = strings.Trim(strings.TrimSpace(prefix), "-")
	if prefix == "" {
		prefix = DefaultAgentNamePrefix
	}

	segments := []string{prefix}
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), "-")
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	if len(segments) == 1 {
		return "", fmt.Errorf("agent identity %q has no unique part", prefix)
	}

	name := strings.Join(segments, "-")
	for _, r := range name {
		if !isContainerNameRune(r) {
			return "", fmt.Errorf("agent identity %q contains invalid character %q", name, r)
		}
	}

	return AgentIdentity(name), nil
}

// ValidateAgentNamePrefix reports whether prefix can start an agent identity.
func ValidateAgentNamePrefix(prefix string) error {
	if _, err := NewAgentIdentity(prefix, "0"); err != nil {
		return fmt.Errorf("invalid agent name prefix %q: %w", prefix, err)
	}
	return nil
}

// IdleAgentRef is a removal candidate. It is only valid at the instant it was
// observed; nothing reserves it.
type IdleAgentRef struct {
	ID   int
	Name string
}

func isContainerNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	default:
		return false
	}
}
