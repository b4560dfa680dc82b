package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func bounds(min, max int) ScalingBounds {
	return ScalingBounds{MinAgents: min, MaxAgents: max, PollInterval: time.Second}
}

func TestDecideWithinBoundsAndNoJobsDoesNothing(t *testing.T) {
	b := bounds(2, 5)
	for online := b.MinAgents; online <= b.MaxAgents; online++ {
		d := Decide(PoolSnapshot{OnlineAgents: online, WaitingJobs: 0}, b)
		assert.Equal(t, 0, d.TotalScaleUps(), "online=%d", online)
		if online == b.MinAgents {
			assert.False(t, d.ScaleDown, "online=%d", online)
			assert.True(t, d.NoOp, "online=%d", online)
		}
	}
}

func TestDecideRestoresFloorInOneCycle(t *testing.T) {
	b := bounds(4, 10)
	for online := 0; online < b.MinAgents; online++ {
		d := Decide(PoolSnapshot{OnlineAgents: online}, b)
		assert.Equal(t, b.MinAgents-online, d.FloorScaleUps, "online=%d", online)
		assert.False(t, d.DemandScaleUp)
		assert.False(t, d.ScaleDown)
		assert.False(t, d.NoOp)
	}
}

func TestDecideDemandAddsExactlyOneAgent(t *testing.T) {
	b := bounds(1, 5)
	for _, waiting := range []int{1, 100} {
		d := Decide(PoolSnapshot{OnlineAgents: 2, WaitingJobs: waiting}, b)
		assert.Equal(t, 0, d.FloorScaleUps)
		assert.True(t, d.DemandScaleUp, "waiting=%d", waiting)
		assert.Equal(t, 1, d.TotalScaleUps())
		assert.False(t, d.ScaleDown)
	}
}

func TestDecideStopsAtCeiling(t *testing.T) {
	d := Decide(PoolSnapshot{OnlineAgents: 5, WaitingJobs: 7}, bounds(1, 5))
	assert.Equal(t, 0, d.TotalScaleUps())
	assert.False(t, d.ScaleDown)
	assert.True(t, d.NoOp)
}

func TestDecideFloorThenDemand(t *testing.T) {
	d := Decide(PoolSnapshot{OnlineAgents: 0, WaitingJobs: 3}, bounds(2, 5))
	assert.Equal(t, 2, d.FloorScaleUps)
	assert.True(t, d.DemandScaleUp)
	assert.Equal(t, 3, d.TotalScaleUps())
	assert.False(t, d.ScaleDown)
}

func TestDecideFloorEqualsCeilingSkipsDemand(t *testing.T) {
	d := Decide(PoolSnapshot{OnlineAgents: 1, WaitingJobs: 3}, bounds(3, 3))
	assert.Equal(t, 2, d.FloorScaleUps)
	assert.False(t, d.DemandScaleUp)
}

func TestDecideScalesDownOnObservedCount(t *testing.T) {
	d := Decide(PoolSnapshot{OnlineAgents: 3, WaitingJobs: 0}, bounds(1, 5))
	assert.True(t, d.ScaleDown)
	assert.Equal(t, 0, d.TotalScaleUps())
	assert.False(t, d.NoOp)
}
