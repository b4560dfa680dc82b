package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
)

// scaleUp creates one agent under a fresh identity. A failure is logged and
// left for the next cycle to re-evaluate.
func (s *Scaler) scaleUp(ctx context.Context, log *logrus.Entry) {
	identity, err := s.namer()
	if err != nil {
		log.WithError(err).Error("Failed to generate agent name.")
		s.metrics.ObserveScaleUp(err)
		return
	}

	log = log.WithField("agent", identity.String())
	log.Warnf("Scaling up: creating new agent '%s'...", identity)

	if err := s.runtime.CreateAgent(ctx, identity, s.opts.PoolName, s.opts.Image); err != nil {
		log.WithError(err).Errorf("Failed to create agent '%s'.", identity)
		s.metrics.ObserveScaleUp(err)
		return
	}

	s.metrics.ObserveScaleUp(nil)
	log.Infof("Agent '%s' created successfully.", identity)
}

// scaleDown removes one idle agent: deregistration from the pool first, the
// container only once that succeeded. The reverse order could leave the pool
// dispatching jobs to an agent whose container is gone.
func (s *Scaler) scaleDown(ctx context.Context, pool domain.PoolID, log *logrus.Entry) {
	log.Warn("Scaling down: looking for idle agent...")

	idle, err := s.gateway.FindIdleAgent(ctx, pool)
	if err != nil {
		log.WithError(err).Error("Failed to get idle agent.")
		s.metrics.ObserveReadError(ports.ReadIdleAgent)
		s.metrics.ObserveScaleDown(ports.ScaleDownNoIdleAgent)
		return
	}
	if idle == nil {
		log.Info("No idle agent found. Skipping scale down.")
		s.metrics.ObserveScaleDown(ports.ScaleDownNoIdleAgent)
		return
	}

	log = log.WithFields(logrus.Fields{"agent": idle.Name, "agent_id": idle.ID})

	if err := s.gateway.RemoveAgent(ctx, pool, idle.ID); err != nil {
		log.WithError(err).Errorf("Failed to remove agent '%s' from pool.", idle.Name)
		s.metrics.ObserveScaleDown(ports.ScaleDownDeregisterFail)
		return
	}

	if err := s.runtime.RemoveAgent(ctx, domain.AgentIdentity(idle.Name)); err != nil {
		// No re-registration and no retry: the container stays behind.
		log.WithError(err).
			WithField("inconsistency", "deregistered_container_running").
			Errorf("Agent '%s' left the pool but its container could not be removed.", idle.Name)
		s.metrics.ObserveScaleDown(ports.ScaleDownContainerFail)
		return
	}

	s.metrics.ObserveScaleDown(ports.ScaleDownRemoved)
	log.Infof("Agent '%s' removed successfully.", idle.Name)
}
