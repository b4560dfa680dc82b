package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
)

const (
	resolveMaxRetries      = 5
	resolveInitialInterval = 2 * time.Second
)

type ScalerOptions struct {
	PoolName string
	Image    string
	Bounds   domain.ScalingBounds
}

// Scaler keeps the number of agent containers of one pool between the
// configured bounds. It assumes it is the only actor scaling the pool.
type Scaler struct {
	gateway ports.PoolGateway
	runtime ports.ContainerRuntime
	opts    ScalerOptions
	namer   AgentNamer
	clock   ports.Clock
	metrics ports.ScalingMetrics
	log     *logrus.Entry

	newBackOff func() backoff.BackOff
}

type ScalerOption func(*Scaler)

func WithClock(clock ports.Clock) ScalerOption {
	return func(s *Scaler) { s.clock = clock }
}

func WithMetrics(metrics ports.ScalingMetrics) ScalerOption {
	return func(s *Scaler) { s.metrics = metrics }
}

func WithNamer(namer AgentNamer) ScalerOption {
	return func(s *Scaler) { s.namer = namer }
}

func WithLogger(log *logrus.Entry) ScalerOption {
	return func(s *Scaler) { s.log = log }
}

func withResolveBackOff(newBackOff func() backoff.BackOff) ScalerOption {
	return func(s *Scaler) { s.newBackOff = newBackOff }
}

func NewScaler(gateway ports.PoolGateway, runtime ports.ContainerRuntime, opts ScalerOptions, options ...ScalerOption) (*Scaler, error) {
	if gateway == nil {
		return nil, errors.New("pool gateway is nil")
	}
	if runtime == nil {
		return nil, errors.New("container runtime is nil")
	}
	if opts.PoolName == "" {
		return nil, errors.New("pool name is required")
	}
	if opts.Image == "" {
		return nil, errors.New("agent image is required")
	}
	if err := opts.Bounds.Validate(); err != nil {
		return nil, err
	}

	s := &Scaler{
		gateway: gateway,
		runtime: runtime,
		opts:    opts,
		namer:   TokenNamer(domain.DefaultAgentNamePrefix),
		clock:   ports.SystemClock(),
		metrics: ports.NopMetrics{},
		log:     logrus.WithField("component", "scaler"),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = resolveInitialInterval
			return backoff.WithMaxRetries(b, resolveMaxRetries)
		},
	}
	for _, option := range options {
		option(s)
	}

	return s, nil
}

// Run resolves the pool and then reconciles it every poll interval until ctx
// is cancelled. The only error it returns is a failure to resolve the pool;
// cancellation while resolving is a clean stop. Failures inside a cycle are
// logged and the loop keeps going.
func (s *Scaler) Run(ctx context.Context) error {
	pool, err := s.resolvePool(ctx)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			s.log.WithField("pool", s.opts.PoolName).Info("Scaling loop stopped before the pool was resolved.")
			return nil
		}
		return err
	}

	log := s.log.WithFields(logrus.Fields{"pool": s.opts.PoolName, "pool_id": int(pool)})
	log.Infof("Pool '%s' found with ID %d.", s.opts.PoolName, pool)

	for {
		if ctx.Err() != nil {
			log.Info("Scaling loop stopped.")
			return nil
		}

		s.runCycle(ctx, pool, log)

		select {
		case <-ctx.Done():
			log.Info("Scaling loop stopped.")
			return nil
		case <-s.clock.After(s.opts.Bounds.PollInterval):
		}
	}
}

func (s *Scaler) resolvePool(ctx context.Context) (domain.PoolID, error) {
	var pool domain.PoolID

	operation := func() error {
		id, err := s.gateway.ResolvePool(ctx, s.opts.PoolName)
		if err != nil {
			if errors.Is(err, domain.ErrPoolNotFound) {
				return backoff.Permanent(err)
			}
			s.log.WithError(err).Warnf("Resolving pool '%s' failed, retrying.", s.opts.PoolName)
			return err
		}
		pool = id
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(s.newBackOff(), ctx)); err != nil {
		return 0, fmt.Errorf("resolve pool %q: %w", s.opts.PoolName, err)
	}

	return pool, nil
}

// runCycle is the per-cycle containment boundary: nothing raised inside a
// cycle reaches Run.
func (s *Scaler) runCycle(ctx context.Context, pool domain.PoolID, log *logrus.Entry) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Error during scaling loop.")
		}
	}()
	defer s.metrics.ObserveCycle()

	s.reconcile(ctx, pool, log)
}

func (s *Scaler) reconcile(ctx context.Context, pool domain.PoolID, log *logrus.Entry) {
	// Calls already issued finish even if the loop is cancelled meanwhile.
	callCtx := context.WithoutCancel(ctx)

	snapshot := s.observe(callCtx, pool, log)
	decision := domain.Decide(snapshot, s.opts.Bounds)

	log.WithFields(logrus.Fields{
		"online_agents": snapshot.OnlineAgents,
		"waiting_jobs":  snapshot.WaitingJobs,
	}).Infof("Online agents: %d, Waiting jobs: %d", snapshot.OnlineAgents, snapshot.WaitingJobs)

	online := snapshot.OnlineAgents
	for i := 0; i < decision.FloorScaleUps; i++ {
		if ctx.Err() != nil {
			return
		}
		log.Warnf("Online agents (%d) < MinAgents (%d). Creating agent...", online, s.opts.Bounds.MinAgents)
		s.scaleUp(callCtx, log)
		online++
	}

	if decision.DemandScaleUp {
		if ctx.Err() != nil {
			return
		}
		log.Warnf("Waiting jobs (%d) > 0 and online agents (%d) < MaxAgents (%d). Scaling up...",
			snapshot.WaitingJobs, online, s.opts.Bounds.MaxAgents)
		s.scaleUp(callCtx, log)
	}

	if decision.ScaleDown {
		if ctx.Err() != nil {
			return
		}
		log.Warnf("No waiting jobs and online agents (%d) > MinAgents (%d). Scaling down...",
			snapshot.OnlineAgents, s.opts.Bounds.MinAgents)
		s.scaleDown(callCtx, pool, log)
	}

	if decision.NoOp {
		if snapshot.WaitingJobs == 0 {
			log.Debug("Minimum agents online, no waiting jobs. No action required.")
		} else {
			log.Debugf("Online agents (%d) at MaxAgents (%d). Waiting jobs stay queued.", online, s.opts.Bounds.MaxAgents)
		}
	}
}

// observe reads both counts. A failed read counts as zero so errors lean
// towards under-scaling.
func (s *Scaler) observe(ctx context.Context, pool domain.PoolID, log *logrus.Entry) domain.PoolSnapshot {
	snapshot := domain.PoolSnapshot{ObservedAt: s.clock.Now()}

	online, err := s.gateway.CountOnlineAgents(ctx, pool)
	if err != nil {
		log.WithError(err).Error("Failed to get online agents.")
		s.metrics.ObserveReadError(ports.ReadOnlineAgents)
		online = 0
	}
	snapshot.OnlineAgents = max(online, 0)

	waiting, err := s.gateway.CountWaitingJobs(ctx, pool)
	if err != nil {
		log.WithError(err).Error("Failed to get waiting jobs.")
		s.metrics.ObserveReadError(ports.ReadWaitingJobs)
		waiting = 0
	}
	snapshot.WaitingJobs = max(waiting, 0)

	s.metrics.ObserveSnapshot(snapshot)
	return snapshot
}
