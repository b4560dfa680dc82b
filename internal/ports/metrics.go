package ports

import "github.com/bnema/azdo-agent-scaler/internal/domain"

type ReadKind string

const (
	ReadOnlineAgents ReadKind = "online_agents"
	ReadWaitingJobs  ReadKind = "waiting_jobs"
	ReadIdleAgent    ReadKind = "idle_agent"
)

type ScaleDownResult string

const (
	ScaleDownRemoved        ScaleDownResult = "removed"
	ScaleDownNoIdleAgent    ScaleDownResult = "no_idle_agent"
	ScaleDownDeregisterFail ScaleDownResult = "deregister_failed"
	ScaleDownContainerFail  ScaleDownResult = "container_failed"
)

// ScalingMetrics receives observations from the reconciliation loop.
type ScalingMetrics interface {
	ObserveSnapshot(snapshot domain.PoolSnapshot)
	ObserveReadError(kind ReadKind)
	ObserveScaleUp(err error)
	ObserveScaleDown(result ScaleDownResult)
	ObserveCycle()
}

type NopMetrics struct{}

func (NopMetrics) ObserveSnapshot(domain.PoolSnapshot) {}
func (NopMetrics) ObserveReadError(ReadKind)           {}
func (NopMetrics) ObserveScaleUp(error)                {}
func (NopMetrics) ObserveScaleDown(ScaleDownResult)    {}
func (NopMetrics) ObserveCycle()                       {}
