package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/sirupsen/logrus"

	"github.com/bnema/azdo-agent-scaler/internal/adapters/runtime/agentspec"
	"github.com/bnema/azdo-agent-scaler/internal/domain"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
)

// engineAPI is the subset of the Docker client the runtime uses.
type engineAPI interface {
	ImagePull(ctx context.Context, ref string, options types.ImagePullOptions) (io.ReadCloser, error)
	ContainerCreate(
		ctx context.Context,
		config *container.Config,
		hostConfig *container.HostConfig,
		networkingConfig *network.NetworkingConfig,
		platform *ocispec.Platform,
		containerName string,
	) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	Close() error
}

type Config struct {
	Registration agentspec.Registration
	PullImage    bool
	Logger       *logrus.Entry
}

// Runtime manages agent containers through the Docker Engine API.
type Runtime struct {
	cl           engineAPI
	registration agentspec.Registration
	pullImage    bool
	log          *logrus.Entry
}

var _ ports.ContainerRuntime = (*Runtime)(nil)

// NewRuntime connects to the daemon described by the DOCKER_* environment
// variables and negotiates the API version.
func NewRuntime(cfg Config) (*Runtime, error) {
	if err := cfg.Registration.Validate(); err != nil {
		return nil, err
	}

	cl, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}

	return newRuntime(cl, cfg), nil
}

func newRuntime(cl engineAPI, cfg Config) *Runtime {
	log := cfg.Logger
	if log == nil {
		log = logrus.WithField("component", "docker-engine")
	}

	return &Runtime{
		cl:           cl,
		registration: cfg.Registration,
		pullImage:    cfg.PullImage,
		log:          log,
	}
}

func (r *Runtime) Close() error {
	return r.cl.Close()
}

func (r *Runtime) CreateAgent(ctx context.Context, identity domain.AgentIdentity, poolName string, image string) error {
	log := r.log.WithField("agent", identity.String())

	if r.pullImage {
		if err := r.pull(ctx, image); err != nil {
			return err
		}
	}

	response, err := r.cl.ContainerCreate(ctx,
		&container.Config{
			Image:  image,
			Env:    r.registration.Env(identity, poolName),
			Labels: agentspec.Labels(poolName),
		},
		&container.HostConfig{},
		nil, nil, identity.String())
	if err != nil {
		return fmt.Errorf("create container %q: %w", identity, err)
	}
	for _, warning := range response.Warnings {
		log.Warnf("warning when creating container: %s", warning)
	}

	if err := r.cl.ContainerStart(ctx, response.ID, container.StartOptions{}); err != nil {
		if rmErr := r.cl.ContainerRemove(ctx, response.ID, container.RemoveOptions{Force: true}); rmErr != nil {
			log.WithError(rmErr).
				WithField("container_id", response.ID).
				Errorf("removing container %s after start failure", response.ID)
		}
		return fmt.Errorf("start container %q: %w", identity, err)
	}

	log.WithField("container_id", response.ID).Infof("Docker container '%s' created successfully.", identity)
	return nil
}

func (r *Runtime) RemoveAgent(ctx context.Context, identity domain.AgentIdentity) error {
	log := r.log.WithField("agent", identity.String())

	err := r.cl.ContainerRemove(ctx, identity.String(), container.RemoveOptions{Force: true})
	switch {
	case errdefs.IsNotFound(err):
		log.Warn("Docker container already gone.")
		return nil
	case err != nil:
		return fmt.Errorf("remove container %q: %w", identity, err)
	}

	log.Infof("Docker container '%s' removed successfully.", identity)
	return nil
}

func (r *Runtime) pull(ctx context.Context, image string) error {
	logs, err := r.cl.ImagePull(ctx, image, types.ImagePullOptions{})
	if err != nil {
		return fmt.Errorf("pull image %s: %w", image, err)
	}
	defer func() {
		if err := logs.Close(); err != nil {
			r.log.WithError(err).Error("error closing image pull stream")
		}
	}()

	// The pull only completes once the progress stream is drained.
	if _, err := io.Copy(io.Discard, logs); err != nil {
		return fmt.Errorf("pull image %s: %w", image, err)
	}
	return nil
}
