package toml

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/azdo-agent-scaler/internal/domain"
)

const redacted = "<redacted>"

// Settings is the effective configuration after flags, environment, file
// and defaults have been merged.
type Settings struct {
	Organization   string
	BaseURL        string
	APIVersion     string
	PAT            string
	PATRef         string
	RequestTimeout time.Duration

	PoolName  string
	MinAgents int
	MaxAgents int
	Interval  time.Duration

	Image      string
	NamePrefix string
	NameStyle  string

	RuntimeDriver string
	PullImage     bool

	MetricsListen string
	SecretsDir    string
}

// DefaultSettings mirrors the registered viper defaults.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:        DefaultBaseURL,
		APIVersion:     DefaultAPIVersion,
		RequestTimeout: DefaultRequestTimeout,
		MinAgents:      DefaultMinAgents,
		MaxAgents:      DefaultMaxAgents,
		Interval:       DefaultInterval,
		Image:          DefaultImage,
		NamePrefix:     DefaultNamePrefix,
		NameStyle:      DefaultNameStyle,
		RuntimeDriver:  DriverCLI,
	}
}

func Decode(v *viper.Viper) (Settings, error) {
	if err := validateVersion(v.GetInt(keyVersion)); err != nil {
		return Settings{}, err
	}

	s := Settings{
		Organization:   strings.TrimSpace(v.GetString(KeyOrganization)),
		BaseURL:        strings.TrimSpace(v.GetString(KeyBaseURL)),
		APIVersion:     strings.TrimSpace(v.GetString(KeyAPIVersion)),
		PAT:            strings.TrimSpace(v.GetString(KeyPAT)),
		PATRef:         strings.TrimSpace(v.GetString(KeyPATRef)),
		RequestTimeout: v.GetDuration(KeyRequestTimeout),
		PoolName:       strings.TrimSpace(v.GetString(KeyPoolName)),
		MinAgents:      v.GetInt(KeyMinAgents),
		MaxAgents:      v.GetInt(KeyMaxAgents),
		Interval:       v.GetDuration(KeyInterval),
		Image:          strings.TrimSpace(v.GetString(KeyImage)),
		NamePrefix:     strings.TrimSpace(v.GetString(KeyNamePrefix)),
		NameStyle:      strings.ToLower(strings.TrimSpace(v.GetString(KeyNameStyle))),
		RuntimeDriver:  strings.ToLower(strings.TrimSpace(v.GetString(KeyRuntimeDriver))),
		PullImage:      v.GetBool(KeyPullImage),
		MetricsListen:  strings.TrimSpace(v.GetString(KeyMetricsListen)),
	}

	dir, err := secretsDir(v.GetString(KeySecretsDir))
	if err != nil {
		return Settings{}, err
	}
	s.SecretsDir = dir

	return s, nil
}

func (s Settings) Bounds() domain.ScalingBounds {
	return domain.ScalingBounds{
		MinAgents:    s.MinAgents,
		MaxAgents:    s.MaxAgents,
		PollInterval: s.Interval,
	}
}

// Validate checks what a scaling run needs. It does not resolve the
// credential.
func (s Settings) Validate() error {
	var errs []error
	if s.Organization == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyOrganization))
	}
	if s.PoolName == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyPoolName))
	}
	if s.Image == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyImage))
	}
	if err := s.Bounds().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := domain.ValidateAgentNamePrefix(s.NamePrefix); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyNamePrefix, err))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be greater than zero", KeyRequestTimeout))
	}
	switch s.RuntimeDriver {
	case DriverCLI, DriverEngine:
	default:
		errs = append(errs, fmt.Errorf("%s must be %q or %q, got %q", KeyRuntimeDriver, DriverCLI, DriverEngine, s.RuntimeDriver))
	}

	return errors.Join(errs...)
}

// Redacted returns a copy safe to print.
func (s Settings) Redacted() Settings {
	if s.PAT != "" {
		s.PAT = redacted
	}
	return s
}
