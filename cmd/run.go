package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/azdo-agent-scaler/internal/adapters/metrics/prom"
	"github.com/bnema/azdo-agent-scaler/internal/application"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
	"github.com/bnema/azdo-agent-scaler/internal/version"
)

func newRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the scaling loop until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.runScaler(ctx)
		},
	}
}

func (a *app) runScaler(ctx context.Context) error {
	settings := a.settings
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := a.entry("azscaler")
	log.WithFields(logrus.Fields{
		"version":      version.Version,
		"organization": settings.Organization,
		"pool":         settings.PoolName,
		"min_agents":   settings.MinAgents,
		"max_agents":   settings.MaxAgents,
		"interval":     settings.Interval.String(),
		"image":        settings.Image,
		"runtime":      settings.RuntimeDriver,
		"config_file":  a.configFile,
	}).Infof("azscaler %s starting.", version.Version)

	token, err := a.resolveToken(ctx)
	if err != nil {
		return err
	}

	gateway, err := a.newGateway(settings, token, a.entry("azdo"))
	if err != nil {
		return err
	}
	runtime, err := a.newRuntime(settings, token, a.entry("runtime"))
	if err != nil {
		return err
	}
	if closer, ok := runtime.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.WithError(err).Warn("closing container runtime")
			}
		}()
	}

	namer, err := application.NamerForStyle(settings.NameStyle, settings.NamePrefix)
	if err != nil {
		return err
	}

	var metrics ports.ScalingMetrics = ports.NopMetrics{}
	var recorder *prom.Recorder
	if settings.MetricsListen != "" {
		recorder = prom.NewRecorder(settings.PoolName)
		metrics = recorder
	}

	scaler, err := application.NewScaler(gateway, runtime, application.ScalerOptions{
		PoolName: settings.PoolName,
		Image:    settings.Image,
		Bounds:   settings.Bounds(),
	},
		application.WithClock(a.clock),
		application.WithMetrics(metrics),
		application.WithNamer(namer),
		application.WithLogger(a.entry("scaler")),
	)
	if err != nil {
		return err
	}

	stopWarning := context.AfterFunc(ctx, func() {
		log.Warn("Shutdown requested. Stopping the scaling loop...")
	})
	defer stopWarning()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scaler.Run(gctx)
	})
	if recorder != nil {
		g.Go(func() error {
			return recorder.Serve(gctx, settings.MetricsListen, a.entry("metrics"))
		})
	}

	return g.Wait()
}
