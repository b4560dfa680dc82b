package application

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenNamerGeneratesDistinctNames(t *testing.T) {
	t.Parallel()

	namer := TokenNamer("azdo-agent")
	first, err := namer()
	require.NoError(t, err)
	second, err := namer()
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^azdo-agent-[0-9a-f]{8}$`), first.String())
	assert.NotEqual(t, first, second)
}

func TestPetnameNamerKeepsPrefixAndToken(t *testing.T) {
	t.Parallel()

	identity, err := PetnameNamer("ci")()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ci-[a-z]+-[a-z]+-[0-9a-f]{4}$`), identity.String())
}

func TestNamerForStyle(t *testing.T) {
	t.Parallel()

	_, err := NamerForStyle("", "azdo-agent")
	require.NoError(t, err)
	_, err = NamerForStyle("Petname", "azdo-agent")
	require.NoError(t, err)
	_, err = NamerForStyle("sequential", "azdo-agent")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported agent name style")
}

func TestNamerForStyleRejectsUnusablePrefix(t *testing.T) {
	t.Parallel()

	namer, err := NamerForStyle(NameStyleToken, "my agent")
	require.Error(t, err)
	assert.Nil(t, namer)
	assert.ErrorContains(t, err, "invalid agent name prefix")
}
