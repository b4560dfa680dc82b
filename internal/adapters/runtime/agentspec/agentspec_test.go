package agentspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationEnv(t *testing.T) {
	t.Parallel()

	reg := Registration{Organization: "contoso", Token: "pat"}
	require.NoError(t, reg.Validate())

	assert.Equal(t, []string{
		"VSTS_ACCOUNT=contoso",
		"VSTS_TOKEN=pat",
		"VSTS_POOL=linux",
		"VSTS_AGENT=azdo-agent-1a2b3c4d",
		"VSTS_AGENT_OS=linux",
	}, reg.Env("azdo-agent-1a2b3c4d", "linux"))
}

func TestRegistrationValidate(t *testing.T) {
	t.Parallel()

	assert.ErrorContains(t, Registration{Token: "pat"}.Validate(), "organization")
	assert.ErrorContains(t, Registration{Organization: "contoso", Token: " "}.Validate(), "token")
}

func TestLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]string{
		"io.azscaler.managed": "true",
		"io.azscaler.pool":    "linux",
	}, Labels("linux"))
}
