package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/sitegen/internal/gateway"
	"github.com/jorge-barreto/sitegen/internal/stages"
)

// Provider selects and configures the model service.
type Provider struct {
	Type      string `yaml:"type"` // claude, ollama or gemini
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api-key-env"`
	Timeout   int    `yaml:"timeout"` // seconds per model call
}

// CallTimeout returns Timeout as a duration.
func (p Provider) CallTimeout() time.Duration {
	return time.Duration(p.Timeout) * time.Second
}

// Profile is the configured form of gateway.Profile. A nil Temperature or a
// zero MaxTokens takes the mode's default.
type Profile struct {
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max-tokens"`
}

// Gateway returns the sampling parameters for mode with unset fields defaulted.
func (p Profile) Gateway(mode gateway.Mode) gateway.Profile {
	out := gateway.DefaultProfile(mode)
	if p.Temperature != nil {
		out.Temperature = *p.Temperature
	}
	if p.MaxTokens > 0 {
		out.MaxTokens = p.MaxTokens
	}
	return out
}

type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type Config struct {
	Name     string   `yaml:"name"`
	Provider Provider `yaml:"provider"`

	Selector  Profile `yaml:"selector"`
	Generator Profile `yaml:"generator"`

	OutputDir    string `yaml:"output-dir"`
	AssetDir     string `yaml:"asset-dir"`
	ComponentExt string `yaml:"component-ext"`
	Templates    string `yaml:"templates"`
	BackupDir    string `yaml:"backup-dir"`
	Concurrency  int    `yaml:"concurrency"`

	Stages []stages.Spec `yaml:"stages"`
	Log    Log           `yaml:"log"`
}

// Load reads a YAML config file and returns a validated Config.
func Load(path, projectRoot string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg, projectRoot); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StageNames returns the configured stage names in order.
func (c *Config) StageNames() []string {
	names := make([]string, len(c.Stages))
	for i, s := range c.Stages {
		names[i] = s.Name
	}
	return names
}

// SelectorProfile returns the sampling parameters for template selection.
func (c *Config) SelectorProfile() gateway.Profile {
	return c.Selector.Gateway(gateway.ModeSelector)
}

// GeneratorProfile returns the sampling parameters for stage and copy generation.
func (c *Config) GeneratorProfile() gateway.Profile {
	return c.Generator.Gateway(gateway.ModeGenerator)
}
