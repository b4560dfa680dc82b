package engine

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/errdefs"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/azdo-agent-scaler/internal/adapters/runtime/agentspec"
)

type fakeEngine struct {
	calls []string

	pulled  []string
	created *container.Config
	name    string
	removed []string
	force   []bool

	pullErr   error
	createErr error
	startErr  error
	removeErr error
}

func (f *fakeEngine) ImagePull(_ context.Context, ref string, _ types.ImagePullOptions) (io.ReadCloser, error) {
	f.calls = append(f.calls, "pull")
	f.pulled = append(f.pulled, ref)
	if f.pullErr != nil {
		return nil, f.pullErr
	}
	return io.NopCloser(strings.NewReader(`{"status":"Downloaded newer image"}`)), nil
}

func (f *fakeEngine) ContainerCreate(
	_ context.Context,
	config *container.Config,
	_ *container.HostConfig,
	_ *network.NetworkingConfig,
	_ *ocispec.Platform,
	name string,
) (container.CreateResponse, error) {
	f.calls = append(f.calls, "create")
	f.created = config
	f.name = name
	if f.createErr != nil {
		return container.CreateResponse{}, f.createErr
	}
	return container.CreateResponse{ID: "c0ffee"}, nil
}

func (f *fakeEngine) ContainerStart(_ context.Context, _ string, _ container.StartOptions) error {
	f.calls = append(f.calls, "start")
	return f.startErr
}

func (f *fakeEngine) ContainerRemove(_ context.Context, id string, options container.RemoveOptions) error {
	f.calls = append(f.calls, "remove")
	f.removed = append(f.removed, id)
	f.force = append(f.force, options.Force)
	return f.removeErr
}

func (f *fakeEngine) Close() error { return nil }

func newTestRuntime(engine *fakeEngine, pullImage bool) *Runtime {
	logger, _ := test.NewNullLogger()
	return newRuntime(engine, Config{
		Registration: agentspec.Registration{Organization: "contoso", Token: "pat-secret"},
		PullImage:    pullImage,
		Logger:       logrus.NewEntry(logger),
	})
}

func TestCreateAgentCreatesAndStartsLabelledContainer(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	rt := newTestRuntime(engine, false)

	err := rt.CreateAgent(context.Background(), "azdo-agent-1a2b3c4d", "linux", "mcr.microsoft.com/azure-pipelines/vsts-agent")
	require.NoError(t, err)

	assert.Equal(t, []string{"create", "start"}, engine.calls)
	assert.Equal(t, "azdo-agent-1a2b3c4d", engine.name)
	require.NotNil(t, engine.created)
	assert.Equal(t, "mcr.microsoft.com/azure-pipelines/vsts-agent", engine.created.Image)
	assert.Contains(t, engine.created.Env, "VSTS_TOKEN=pat-secret")
	assert.Contains(t, engine.created.Env, "VSTS_POOL=linux")
	assert.Equal(t, "true", engine.created.Labels[agentspec.LabelManaged])
	assert.Equal(t, "linux", engine.created.Labels[agentspec.LabelPool])
}

func TestCreateAgentPullsImageWhenConfigured(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	rt := newTestRuntime(engine, true)

	require.NoError(t, rt.CreateAgent(context.Background(), "azdo-agent-1", "linux", "agent:latest"))
	assert.Equal(t, []string{"pull", "create", "start"}, engine.calls)
	assert.Equal(t, []string{"agent:latest"}, engine.pulled)
}

func TestCreateAgentStopsWhenPullFails(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{pullErr: errors.New("manifest unknown")}
	rt := newTestRuntime(engine, true)

	err := rt.CreateAgent(context.Background(), "azdo-agent-1", "linux", "agent:missing")
	require.Error(t, err)
	assert.ErrorContains(t, err, "manifest unknown")
	assert.Equal(t, []string{"pull"}, engine.calls)
}

func TestCreateAgentRemovesContainerThatFailedToStart(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{startErr: errors.New("port is already allocated")}
	rt := newTestRuntime(engine, false)

	err := rt.CreateAgent(context.Background(), "azdo-agent-1", "linux", "image")
	require.Error(t, err)
	assert.Equal(t, []string{"create", "start", "remove"}, engine.calls)
	assert.Equal(t, []string{"c0ffee"}, engine.removed)
}

func TestRemoveAgentForceRemovesByName(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{}
	rt := newTestRuntime(engine, false)

	require.NoError(t, rt.RemoveAgent(context.Background(), "azdo-agent-1"))
	assert.Equal(t, []string{"azdo-agent-1"}, engine.removed)
	assert.Equal(t, []bool{true}, engine.force)
}

func TestRemoveAgentTreatsNotFoundAsRemoved(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{removeErr: errdefs.NotFound(errors.New("No such container: azdo-agent-1"))}
	rt := newTestRuntime(engine, false)

	require.NoError(t, rt.RemoveAgent(context.Background(), "azdo-agent-1"))
}

func TestRemoveAgentReportsDaemonErrors(t *testing.T) {
	t.Parallel()

	engine := &fakeEngine{removeErr: errors.New("Cannot connect to the Docker daemon")}
	rt := newTestRuntime(engine, false)

	err := rt.RemoveAgent(context.Background(), "azdo-agent-1")
	require.Error(t, err)
	assert.ErrorContains(t, err, "Cannot connect")
}
