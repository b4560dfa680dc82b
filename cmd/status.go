package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/azdo-agent-scaler/internal/application"
)

type statusJSON struct {
	Pool       string         `json:"pool"`
	PoolID     int            `json:"pool_id"`
	ObservedAt time.Time      `json:"observed_at"`
	Online     int            `json:"online_agents"`
	Waiting    int            `json:"waiting_jobs"`
	MinAgents  int            `json:"min_agents"`
	MaxAgents  int            `json:"max_agents"`
	IdleAgent  *idleAgentJSON `json:"idle_agent"`
	Decision   decisionJSON   `json:"decision"`
}

type idleAgentJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type decisionJSON struct {
	FloorScaleUps int  `json:"floor_scale_ups"`
	DemandScaleUp bool `json:"demand_scale_up"`
	ScaleDown     bool `json:"scale_down"`
	NoOp          bool `json:"no_op"`
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the pool state and what the next cycle would do",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				status application.PoolStatus
				err    error
			)
			if asJSON || !app.spinner {
				status, err = app.poolStatus(cmd.Context())
			} else {
				status, err = runPoolReadSpinner(cmd.Context(), cmd.ErrOrStderr(), app.clock,
					app.settings.PoolName, app.settings.Organization, app.poolStatus)
			}
			if err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, status, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output status as JSON")

	return cmd
}

func (a *app) poolStatus(ctx context.Context) (application.PoolStatus, error) {
	if err := a.settings.Validate(); err != nil {
		return application.PoolStatus{}, fmt.Errorf("invalid configuration: %w", err)
	}

	token, err := a.resolveToken(ctx)
	if err != nil {
		return application.PoolStatus{}, err
	}

	gateway, err := a.newGateway(a.settings, token, a.entry("azdo"))
	if err != nil {
		return application.PoolStatus{}, err
	}

	return application.NewStatusService(gateway, a.clock).GetStatus(ctx, a.settings.PoolName, a.settings.Bounds())
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.PoolStatus, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(toStatusJSON(status))
	}

	rendered, err := app.statusRenderer(status)
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func toStatusJSON(status application.PoolStatus) statusJSON {
	out := statusJSON{
		Pool:       status.PoolName,
		PoolID:     int(status.PoolID),
		ObservedAt: status.Snapshot.ObservedAt,
		Online:     status.Snapshot.OnlineAgents,
		Waiting:    status.Snapshot.WaitingJobs,
		MinAgents:  status.Bounds.MinAgents,
		MaxAgents:  status.Bounds.MaxAgents,
		Decision: decisionJSON{
			FloorScaleUps: status.Decision.FloorScaleUps,
			DemandScaleUp: status.Decision.DemandScaleUp,
			ScaleDown:     status.Decision.ScaleDown,
			NoOp:          status.Decision.NoOp,
		},
	}
	if status.IdleAgent != nil {
		out.IdleAgent = &idleAgentJSON{ID: status.IdleAgent.ID, Name: status.IdleAgent.Name}
	}
	return out
}
