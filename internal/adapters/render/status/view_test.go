package status

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/azdo-agent-scaler/internal/application"
	"github.com/bnema/azdo-agent-scaler/internal/domain"
)

var testBounds = domain.ScalingBounds{MinAgents: 2, MaxAgents: 4, PollInterval: 30 * time.Second}

func poolStatus(online, waiting int, idle *domain.IdleAgentRef) application.PoolStatus {
	snapshot := domain.PoolSnapshot{
		OnlineAgents: online,
		WaitingJobs:  waiting,
		ObservedAt:   time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC),
	}
	return application.PoolStatus{
		PoolName:  "linux",
		PoolID:    7,
		Bounds:    testBounds,
		Snapshot:  snapshot,
		IdleAgent: idle,
		Decision:  domain.Decide(snapshot, testBounds),
	}
}

func TestRenderPoolAtRest(t *testing.T) {
	output, err := Render(poolStatus(2, 0, nil))

	require.NoError(t, err)
	assert.Contains(t, output, "Azure DevOps Agent Pool")
	assert.Contains(t, output, "linux (#7)")
	assert.Contains(t, output, "2/4 (min 2)")
	assert.Contains(t, output, "waiting jobs: 0")
	assert.Contains(t, output, "idle agent: none")
	assert.Contains(t, output, "next cycle: no action")
	assert.Contains(t, output, "2026-02-14 11:00:00 UTC")
	assert.NotContains(t, output, "below floor")
}

func TestRenderBelowFloorWithDemand(t *testing.T) {
	output, err := Render(poolStatus(0, 3, nil))

	require.NoError(t, err)
	assert.Contains(t, output, "[below floor]")
	assert.Contains(t, output, "create 2 agent(s) to reach the floor, then create 1 agent for waiting jobs")
}

func TestRenderScaleDownNamesIdleAgent(t *testing.T) {
	output, err := Render(poolStatus(3, 0, &domain.IdleAgentRef{ID: 42, Name: "azdo-agent-1a2b3c4d"}))

	require.NoError(t, err)
	assert.Contains(t, output, "idle agent: azdo-agent-1a2b3c4d (#42)")
	assert.Contains(t, output, "remove idle agent azdo-agent-1a2b3c4d")
}

func TestRenderAtCeilingWithWaitingJobs(t *testing.T) {
	output, err := Render(poolStatus(4, 5, nil))

	require.NoError(t, err)
	assert.Contains(t, output, "pool is at its ceiling")
}

func TestRenderCapacityBar(t *testing.T) {
	s := newStyles()
	bounds := domain.ScalingBounds{MinAgents: 2, MaxAgents: 4, PollInterval: time.Second}

	testCases := []struct {
		name   string
		online int
		want   string
	}{
		{name: "empty", online: 0, want: "[!!!!!!!!!!----------]"},
		{name: "half", online: 2, want: "[==========----------]"},
		{name: "full", online: 4, want: "[====================]"},
		{name: "overflow", online: 9, want: "[====================]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripANSI(renderCapacityBar(tc.online, bounds, capacityBarWidth, s)))
		})
	}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
