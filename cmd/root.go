package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const (
	annotationSkipConfig     = "azscaler/skip-config"
	annotationConfigOptional = "azscaler/config-optional"
)

// Execute runs the CLI. A panic below is reported and turned into an error
// so the process still exits non-zero.
func Execute() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fatal: %v", r)
			fmt.Fprintf(os.Stderr, "Error: %v\n%s", err, debug.Stack())
		}
	}()

	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithApp(wireApp())
}

func newRootCmdWithApp(app *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "azscaler",
		Short:         "Autoscale self-hosted Azure DevOps agent containers",
		Long:          "azscaler keeps the number of Docker-hosted Azure DevOps build agents in one pool between a floor and a ceiling, adding agents when jobs queue up and removing idle ones when the queue is empty.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationSkipConfig] == "true" {
				return nil
			}
			return app.load(cmd)
		},
	}

	app.bindFlags(rootCmd)

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newStatusCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
