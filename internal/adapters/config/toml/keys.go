package toml

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyOrganization   = "azdo.organization"
	KeyBaseURL        = "azdo.base_url"
	KeyAPIVersion     = "azdo.api_version"
	KeyPAT            = "azdo.pat"
	KeyPATRef         = "azdo.pat_ref"
	KeyRequestTimeout = "azdo.request_timeout"
	KeyPoolName       = "pool.name"
	KeyMinAgents      = "pool.min_agents"
	KeyMaxAgents      = "pool.max_agents"
	KeyInterval       = "pool.interval"
	KeyImage          = "agent.image"
	KeyNamePrefix     = "agent.name_prefix"
	KeyNameStyle      = "agent.name_style"
	KeyRuntimeDriver  = "runtime.driver"
	KeyPullImage      = "runtime.pull_image"
	KeyMetricsListen  = "metrics.listen"
	KeySecretsDir     = "secrets.dir"

	keyVersion = "version"

	EnvPrefix = "AZSCALER"
)

const (
	DefaultBaseURL        = "https://dev.azure.com"
	DefaultAPIVersion     = "7.1"
	DefaultRequestTimeout = 30 * time.Second
	DefaultMinAgents      = 1
	DefaultMaxAgents      = 5
	DefaultInterval       = 30 * time.Second
	DefaultImage          = "mcr.microsoft.com/azure-pipelines/vsts-agent"
	DefaultNamePrefix     = "azdo-agent"
	DefaultNameStyle      = "token"

	DriverCLI    = "cli"
	DriverEngine = "engine"
)

// NewViper returns a viper instance with defaults registered and environment
// lookup enabled (AZSCALER_POOL_NAME for pool.name).
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyAPIVersion, DefaultAPIVersion)
	v.SetDefault(KeyRequestTimeout, DefaultRequestTimeout)
	v.SetDefault(KeyMinAgents, DefaultMinAgents)
	v.SetDefault(KeyMaxAgents, DefaultMaxAgents)
	v.SetDefault(KeyInterval, DefaultInterval)
	v.SetDefault(KeyImage, DefaultImage)
	v.SetDefault(KeyNamePrefix, DefaultNamePrefix)
	v.SetDefault(KeyNameStyle, DefaultNameStyle)
	v.SetDefault(KeyRuntimeDriver, DriverCLI)
	v.SetDefault(KeyPullImage, false)
	v.SetDefault(KeyMetricsListen, "")
	v.SetDefault(KeySecretsDir, "")
}
