package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnema/azdo-agent-scaler/internal/adapters/azdo"
	configtoml "github.com/bnema/azdo-agent-scaler/internal/adapters/config/toml"
	statusadapter "github.com/bnema/azdo-agent-scaler/internal/adapters/render/status"
	"github.com/bnema/azdo-agent-scaler/internal/adapters/runtime/agentspec"
	runtimecli "github.com/bnema/azdo-agent-scaler/internal/adapters/runtime/cli"
	runtimeengine "github.com/bnema/azdo-agent-scaler/internal/adapters/runtime/engine"
	chainsource "github.com/bnema/azdo-agent-scaler/internal/adapters/secrets/chain"
	"github.com/bnema/azdo-agent-scaler/internal/application"
	"github.com/bnema/azdo-agent-scaler/internal/domain"
	"github.com/bnema/azdo-agent-scaler/internal/logging"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
)

type gatewayFactory func(settings configtoml.Settings, token string, log *logrus.Entry) (ports.PoolGateway, error)

type runtimeFactory func(settings configtoml.Settings, token string, log *logrus.Entry) (ports.ContainerRuntime, error)

type credentialFactory func(settings configtoml.Settings) (ports.CredentialSource, error)

type app struct {
	viper      *viper.Viper
	configPath string
	logLevel   string
	logFormat  string

	// Set by load before any command runs.
	settings   configtoml.Settings
	configFile string
	log        *logrus.Logger

	newGateway     gatewayFactory
	newRuntime     runtimeFactory
	newCredentials credentialFactory
	statusRenderer func(application.PoolStatus) (string, error)
	clock          ports.Clock
	spinner        bool
}

func wireApp() *app {
	return &app{
		viper:          configtoml.NewViper(),
		newGateway:     newAzDOGateway,
		newRuntime:     newContainerRuntime,
		newCredentials: newCredentialChain,
		statusRenderer: statusadapter.Render,
		clock:          ports.SystemClock(),
		spinner:        true,
	}
}

func (a *app) bindFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default ~/.azscaler/config.toml)")
	flags.StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", logging.FormatText, "Log format: text or json")

	flags.String("org", "", "Azure DevOps organization")
	flags.String("azdo-url", configtoml.DefaultBaseURL, "Azure DevOps base URL")
	flags.String("pat", "", "Personal access token (prefer --pat-ref or AZSCALER_AZDO_PAT)")
	flags.String("pat-ref", "", "Key of the personal access token in pass or the secrets directory")
	flags.String("pool-name", "", "Agent pool to scale")
	flags.Int("min-agents", configtoml.DefaultMinAgents, "Minimum number of online agents")
	flags.Int("max-agents", configtoml.DefaultMaxAgents, "Maximum number of online agents")
	flags.Duration("interval", configtoml.DefaultInterval, "Polling interval")
	flags.String("docker-image", configtoml.DefaultImage, "Agent container image")
	flags.String("name-prefix", configtoml.DefaultNamePrefix, "Prefix of generated agent names")
	flags.String("runtime", configtoml.DriverCLI, "Container runtime: cli or engine")
	flags.String("metrics-listen", "", "Address to serve Prometheus metrics on, empty to disable")

	for key, flag := range map[string]string{
		configtoml.KeyOrganization:  "org",
		configtoml.KeyBaseURL:       "azdo-url",
		configtoml.KeyPAT:           "pat",
		configtoml.KeyPATRef:        "pat-ref",
		configtoml.KeyPoolName:      "pool-name",
		configtoml.KeyMinAgents:     "min-agents",
		configtoml.KeyMaxAgents:     "max-agents",
		configtoml.KeyInterval:      "interval",
		configtoml.KeyImage:         "docker-image",
		configtoml.KeyNamePrefix:    "name-prefix",
		configtoml.KeyRuntimeDriver: "runtime",
		configtoml.KeyMetricsListen: "metrics-listen",
	} {
		if err := a.viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}
}

// load merges flags, environment, config file and defaults, and builds the
// logger.
func (a *app) load(cmd *cobra.Command) error {
	logger, err := logging.New(a.logLevel, a.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = logger

	mustExist := a.configPath != "" && cmd.Annotations[annotationConfigOptional] != "true"
	path, err := configtoml.Load(a.viper, a.configPath, mustExist)
	if err != nil {
		return err
	}
	a.configFile = path

	settings, err := configtoml.Decode(a.viper)
	if err != nil {
		return err
	}
	a.settings = settings

	return nil
}

func (a *app) entry(component string) *logrus.Entry {
	return a.log.WithField("component", component)
}

// resolveToken returns the PAT given directly, or looks up its reference
// through the credential chain.
func (a *app) resolveToken(ctx context.Context) (string, error) {
	if a.settings.PAT != "" {
		return a.settings.PAT, nil
	}
	if a.settings.PATRef == "" {
		return "", fmt.Errorf("set %s or %s: %w", configtoml.KeyPAT, configtoml.KeyPATRef, domain.ErrMissingCredential)
	}

	source, err := a.newCredentials(a.settings)
	if err != nil {
		return "", fmt.Errorf("wire credential sources: %w", err)
	}

	token, err := source.Get(ctx, a.settings.PATRef)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", fmt.Errorf("%s %q: %w: %w", configtoml.KeyPATRef, a.settings.PATRef, domain.ErrMissingCredential, err)
		}
		return "", fmt.Errorf("resolve %s %q: %w", configtoml.KeyPATRef, a.settings.PATRef, err)
	}

	return token, nil
}

func newAzDOGateway(settings configtoml.Settings, token string, log *logrus.Entry) (ports.PoolGateway, error) {
	client, err := azdo.NewClient(azdo.Config{
		BaseURL:        settings.BaseURL,
		Organization:   settings.Organization,
		Token:          token,
		APIVersion:     settings.APIVersion,
		RequestTimeout: settings.RequestTimeout,
		Logger:         log,
	})
	if err != nil {
		return nil, fmt.Errorf("wire azure devops gateway: %w", err)
	}
	return client, nil
}

func newContainerRuntime(settings configtoml.Settings, token string, log *logrus.Entry) (ports.ContainerRuntime, error) {
	registration := agentspec.Registration{Organization: settings.Organization, Token: token}

	switch settings.RuntimeDriver {
	case configtoml.DriverEngine:
		rt, err := runtimeengine.NewRuntime(runtimeengine.Config{
			Registration: registration,
			PullImage:    settings.PullImage,
			Logger:       log,
		})
		if err != nil {
			return nil, fmt.Errorf("wire docker engine runtime: %w", err)
		}
		return rt, nil
	default:
		rt, err := runtimecli.NewRuntime(runtimecli.Config{
			Registration: registration,
			PullImage:    settings.PullImage,
			Logger:       log,
		})
		if err != nil {
			return nil, fmt.Errorf("wire docker cli runtime: %w", err)
		}
		return rt, nil
	}
}

func newCredentialChain(settings configtoml.Settings) (ports.CredentialSource, error) {
	return chainsource.NewPassFirstWithFileFallback(settings.SecretsDir)
}
