package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/azdo-agent-scaler/internal/application"
	"github.com/bnema/azdo-agent-scaler/internal/domain"
)

const capacityBarWidth = 20

func renderView(status application.PoolStatus, s styles) string {
	lines := []string{
		s.title.Render("Azure DevOps Agent Pool"),
		s.header.Render(observedLine(status.Snapshot.ObservedAt)),
	}

	body := []string{
		s.pool.Render(fmt.Sprintf("%s (#%d)", status.PoolName, status.PoolID)),
		capacityLine(status.Snapshot.OnlineAgents, status.Bounds, s),
		keyValue("waiting jobs:", fmt.Sprintf("%d", status.Snapshot.WaitingJobs), s),
		keyValue("idle agent:", idleLabel(status.IdleAgent), s),
		keyValue("interval:", status.Bounds.PollInterval.String(), s),
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, body...)))
	lines = append(lines, s.section.Render(decisionLine(status, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func observedLine(at time.Time) string {
	if at.IsZero() {
		return "observed: unknown"
	}
	return "observed: " + at.Format("2006-01-02 15:04:05 MST")
}

func keyValue(key, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(key), " ", s.detail.Render(value))
}

func capacityLine(online int, bounds domain.ScalingBounds, s styles) string {
	label := s.key.Render("online agents:")
	bar := renderCapacityBar(online, bounds, capacityBarWidth, s)
	meta := s.meta.Render(fmt.Sprintf("%d/%d (min %d)", online, bounds.MaxAgents, bounds.MinAgents))

	line := lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", meta)
	if online < bounds.MinAgents {
		line += " " + s.warning.Render("[below floor]")
	}
	return line
}

// renderCapacityBar draws online agents against the ceiling. Cells below the
// floor that are not yet filled are marked so a shortfall stands out.
func renderCapacityBar(online int, bounds domain.ScalingBounds, width int, s styles) string {
	if width <= 0 || bounds.MaxAgents <= 0 {
		return ""
	}

	filled := cells(online, bounds.MaxAgents, width)
	floor := cells(bounds.MinAgents, bounds.MaxAgents, width)
	missing := max(floor-filled, 0)
	empty := max(width-filled-missing, 0)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barFloor.Render(strings.Repeat("!", missing)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func cells(value, total, width int) int {
	if total <= 0 || value <= 0 {
		return 0
	}
	n := (value*width + total/2) / total
	return min(n, width)
}

func idleLabel(idle *domain.IdleAgentRef) string {
	if idle == nil {
		return "none"
	}
	return fmt.Sprintf("%s (#%d)", idle.Name, idle.ID)
}

func decisionLine(status application.PoolStatus, s styles) string {
	label := s.key.Render("next cycle:")
	d := status.Decision

	if d.NoOp {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.idle.Render(noOpReason(status)))
	}

	var actions []string
	if d.FloorScaleUps > 0 {
		actions = append(actions, fmt.Sprintf("create %d agent(s) to reach the floor", d.FloorScaleUps))
	}
	if d.DemandScaleUp {
		actions = append(actions, "create 1 agent for waiting jobs")
	}
	if d.ScaleDown {
		if status.IdleAgent != nil {
			actions = append(actions, fmt.Sprintf("remove idle agent %s", status.IdleAgent.Name))
		} else {
			actions = append(actions, "remove an idle agent (none idle right now)")
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.action.Render(strings.Join(actions, ", then ")))
}

func noOpReason(status application.PoolStatus) string {
	if status.Snapshot.WaitingJobs > 0 {
		return "no action, pool is at its ceiling"
	}
	return "no action"
}
