package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	configtoml "github.com/bnema/azdo-agent-scaler/internal/adapters/config/toml"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(newConfigInitCmd(app), newConfigShowCmd(app))

	return cmd
}

func newConfigInitCmd(app *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file from defaults and the given flags",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.configPath
			if path == "" {
				defaultPath, err := configtoml.DefaultPath()
				if err != nil {
					return err
				}
				path = defaultPath
			}

			settings := app.settings
			if settings.PAT != "" {
				app.entry("config").Warn("The token is not written to the config file; set azdo.pat_ref or AZSCALER_AZDO_PAT instead.")
				settings.PAT = ""
			}

			if err := configtoml.Write(path, settings, force); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with the token redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := configtoml.Encode(app.settings.Redacted())
			if err != nil {
				return err
			}

			if app.configFile != "" {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "# loaded from %s\n", app.configFile); err != nil {
					return err
				}
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
