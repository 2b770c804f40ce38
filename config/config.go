package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/jobseq/core/metrics"
	"github.com/kilianp07/jobseq/core/sequencing"
)

// EnvPrefix marks environment variables overriding file settings, e.g.
// JOBSEQ_SEQUENCING__STRATEGY=lp.
const EnvPrefix = "JOBSEQ_"

type Config struct {
	Sequencing sequencing.Config `json:"sequencing"`
	Metrics    metrics.Config    `json:"metrics"`
	Logging    LoggingConfig     `json:"logging"`
	HTTP       HTTPConfig        `json:"http"`
	RunLog     RunLogConfig      `json:"runlog"`
}

// Load reads the configuration file at path and applies environment
// overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = tomlParser{}
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Sequencing.SetDefaults()
	c.Logging.SetDefaults()
	c.HTTP.SetDefaults()
	c.RunLog.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Sequencing.Validate(); err != nil {
		return fmt.Errorf("sequencing: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := c.RunLog.Validate(); err != nil {
		return fmt.Errorf("runlog: %w", err)
	}
	return nil
}

// Default returns a validated configuration with defaults applied.
func Default() *Config {
	var c Config
	c.SetDefaults()
	return &c
}
