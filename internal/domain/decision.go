package domain

// Decision is the outcome of one reconciliation step for a snapshot.
type Decision struct {
	// FloorScaleUps restores the minimum in a single cycle.
	FloorScaleUps int
	// DemandScaleUp adds at most one agent while jobs are waiting.
	DemandScaleUp bool
	// ScaleDown removes at most one idle agent.
	ScaleDown bool
	// NoOp is set when the cycle issues no action at all.
	NoOp bool
}

func (d Decision) TotalScaleUps() int {
	total := d.FloorScaleUps
	if d.DemandScaleUp {
		total++
	}
	return total
}

// Decide applies the scaling policy to one snapshot.
//
// Scale-ups are counted against an optimistic local counter, while scale-down
// is judged on the observed online count.
func Decide(snapshot PoolSnapshot, bounds ScalingBounds) Decision {
	var d Decision

	observed := snapshot.OnlineAgents
	online := observed

	for online < bounds.MinAgents {
		d.FloorScaleUps++
		online++
	}

	if snapshot.WaitingJobs > 0 && online < bounds.MaxAgents {
		d.DemandScaleUp = true
		online++
	}

	if snapshot.WaitingJobs == 0 && observed > bounds.MinAgents {
		d.ScaleDown = true
	}

	d.NoOp = d.TotalScaleUps() == 0 && !d.ScaleDown

	return d
}
