package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bnema/azdo-agent-scaler/internal/adapters/runtime/agentspec"
	"github.com/bnema/azdo-agent-scaler/internal/domain"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
)

const defaultBinary = "docker"

var ErrUnavailable = errors.New("docker command unavailable")

// runFunc runs the docker binary with extra environment entries appended to
// the current process environment.
type runFunc func(ctx context.Context, env []string, args ...string) (stdout string, stderr string, err error)

type Config struct {
	Registration agentspec.Registration
	// Binary defaults to docker; any CLI compatible with docker run/rm works.
	Binary    string
	PullImage bool
	Logger    *logrus.Entry
}

// Runtime manages agent containers by shelling out to the docker CLI.
type Runtime struct {
	registration agentspec.Registration
	pullImage    bool
	run          runFunc
	log          *logrus.Entry
}

var _ ports.ContainerRuntime = (*Runtime)(nil)

func NewRuntime(cfg Config) (*Runtime, error) {
	if err := cfg.Registration.Validate(); err != nil {
		return nil, err
	}

	binary := cfg.Binary
	if binary == "" {
		binary = defaultBinary
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.WithField("component", "docker-cli")
	}

	return &Runtime{
		registration: cfg.Registration,
		pullImage:    cfg.PullImage,
		run:          commandRunner(binary),
		log:          log,
	}, nil
}

func (r *Runtime) CreateAgent(ctx context.Context, identity domain.AgentIdentity, poolName string, image string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	args, env := r.runArgs(identity, poolName, image)
	stdout, stderr, err := r.run(ctx, env, args...)
	if err != nil {
		return formatError("run", identity, err, stderr)
	}

	r.log.WithFields(logrus.Fields{
		"agent":        identity.String(),
		"container_id": strings.TrimSpace(stdout),
	}).Infof("Docker container '%s' created successfully.", identity)
	return nil
}

func (r *Runtime) RemoveAgent(ctx context.Context, identity domain.AgentIdentity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := r.run(ctx, nil, "rm", "-f", identity.String())
	if err != nil {
		if strings.Contains(stderr, "No such container") {
			r.log.WithField("agent", identity.String()).Warn("Docker container already gone.")
			return nil
		}
		return formatError("rm", identity, err, stderr)
	}

	r.log.WithField("agent", identity.String()).Infof("Docker container '%s' removed successfully.", identity)
	return nil
}

// runArgs builds the docker run command line. Values travel through the
// process environment and only their names appear on the command line, so
// the token never shows up in a process listing.
func (r *Runtime) runArgs(identity domain.AgentIdentity, poolName string, image string) ([]string, []string) {
	args := []string{"run", "-d", "--name", identity.String()}
	if r.pullImage {
		args = append(args, "--pull", "always")
	}

	labels := agentspec.Labels(poolName)
	keys := make([]string, 0, len(labels))
	for key := range labels {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		args = append(args, "--label", key+"="+labels[key])
	}

	env := r.registration.Env(identity, poolName)
	for _, entry := range env {
		name, _, _ := strings.Cut(entry, "=")
		args = append(args, "-e", name)
	}

	return append(args, image), env
}

func commandRunner(binary string) runFunc {
	return func(ctx context.Context, env []string, args ...string) (string, string, error) {
		path, err := exec.LookPath(binary)
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return "", "", ErrUnavailable
			}
			return "", "", fmt.Errorf("locate %s command: %w", binary, err)
		}

		cmd := exec.CommandContext(ctx, path, args...)
		if len(env) > 0 {
			cmd.Env = append(os.Environ(), env...)
		}

		var stdout bytes.Buffer
		var stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err = cmd.Run()
		return stdout.String(), strings.TrimSpace(stderr.String()), err
	}
}

func formatError(op string, identity domain.AgentIdentity, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("docker %s %q: %w", op, identity, err)
	}

	return fmt.Errorf("docker %s %q: %w: %s", op, identity, err, stderr)
}
