package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version" comment:"Configuration schema version."`
	AzDO    azdoSchema    `toml:"azdo"`
	Pool    poolSchema    `toml:"pool"`
	Agent   agentSchema   `toml:"agent"`
	Runtime runtimeSchema `toml:"runtime"`
	Metrics metricsSchema `toml:"metrics"`
	Secrets secretsSchema `toml:"secrets"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func validateVersion(version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", version, currentSchemaVersion)
	}

	return nil
}

type azdoSchema struct {
	Organization   string `toml:"organization" comment:"Azure DevOps organization name."`
	BaseURL        string `toml:"base_url"`
	APIVersion     string `toml:"api_version"`
	PAT            string `toml:"pat,omitempty" comment:"Personal access token. Prefer pat_ref."`
	PATRef         string `toml:"pat_ref" comment:"Key of the token in pass or in the secrets directory."`
	RequestTimeout string `toml:"request_timeout"`
}

type poolSchema struct {
	Name      string `toml:"name" comment:"Agent pool to scale."`
	MinAgents int    `toml:"min_agents"`
	MaxAgents int    `toml:"max_agents"`
	Interval  string `toml:"interval"`
}

type agentSchema struct {
	Image      string `toml:"image"`
	NamePrefix string `toml:"name_prefix"`
	NameStyle  string `toml:"name_style" comment:"token or petname."`
}

type runtimeSchema struct {
	Driver    string `toml:"driver" comment:"cli (docker binary) or engine (Docker Engine API)."`
	PullImage bool   `toml:"pull_image"`
}

type metricsSchema struct {
	Listen string `toml:"listen" comment:"Address of the Prometheus endpoint, empty to disable."`
}

type secretsSchema struct {
	Dir string `toml:"dir,omitempty"`
}

func toFileSchema(s Settings) fileSchema {
	file := fileSchema{
		AzDO: azdoSchema{
			Organization:   s.Organization,
			BaseURL:        s.BaseURL,
			APIVersion:     s.APIVersion,
			PAT:            s.PAT,
			PATRef:         s.PATRef,
			RequestTimeout: s.RequestTimeout.String(),
		},
		Pool: poolSchema{
			Name:      s.PoolName,
			MinAgents: s.MinAgents,
			MaxAgents: s.MaxAgents,
			Interval:  s.Interval.String(),
		},
		Agent: agentSchema{
			Image:      s.Image,
			NamePrefix: s.NamePrefix,
			NameStyle:  s.NameStyle,
		},
		Runtime: runtimeSchema{
			Driver:    s.RuntimeDriver,
			PullImage: s.PullImage,
		},
		Metrics: metricsSchema{Listen: s.MetricsListen},
		Secrets: secretsSchema{Dir: s.SecretsDir},
	}
	file.applyDefaults()

	return file
}
