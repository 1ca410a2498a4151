package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/sitegen/internal/stages"
)

var defaultModels = map[string]string{
	"claude": "sonnet",
	"ollama": "llama3.1",
	"gemini": "gemini-2.5-flash",
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the config for errors and sets defaults. Relative paths
// are resolved against projectRoot.
func Validate(cfg *Config, projectRoot string) error {
	if cfg.Name == "" {
		return fmt.Errorf("config: 'name' is required")
	}

	p := &cfg.Provider
	if p.Type == "" {
		p.Type = "claude"
	}
	model, ok := defaultModels[p.Type]
	if !ok {
		return fmt.Errorf("config: provider: unknown type %q (must be claude, ollama, or gemini)", p.Type)
	}
	if p.Model == "" {
		p.Model = model
	}
	if p.Type == "gemini" && p.APIKeyEnv == "" {
		p.APIKeyEnv = "GEMINI_API_KEY"
	}
	if p.Timeout < 0 {
		return fmt.Errorf("config: provider: timeout must be >= 0")
	}
	if p.Timeout == 0 {
		p.Timeout = 300
	}

	if err := validateProfile("selector", cfg.Selector); err != nil {
		return err
	}
	if err := validateProfile("generator", cfg.Generator); err != nil {
		return err
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = "site"
	}
	if cfg.AssetDir == "" {
		cfg.AssetDir = "components"
	}
	if cfg.ComponentExt == "" {
		cfg.ComponentExt = ".tsx"
	}
	if !strings.HasPrefix(cfg.ComponentExt, ".") || strings.ContainsAny(cfg.ComponentExt, `/\`) {
		return fmt.Errorf("config: 'component-ext' %q must start with '.' and contain no path separators", cfg.ComponentExt)
	}
	if cfg.Templates == "" {
		cfg.Templates = filepath.Join(".sitegen", "templates.yaml")
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = filepath.Join(".sitegen", "backups")
	}
	if cfg.Concurrency < 0 {
		return fmt.Errorf("config: 'concurrency' must be >= 1")
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}

	for _, dir := range []*string{&cfg.OutputDir, &cfg.AssetDir, &cfg.Templates, &cfg.BackupDir} {
		*dir = resolve(projectRoot, *dir)
	}
	if err := validateOutputDir(cfg, projectRoot); err != nil {
		return err
	}

	if len(cfg.Stages) == 0 {
		cfg.Stages = stages.DefaultSpecs()
	}
	seen := make(map[string]bool)
	for i, s := range cfg.Stages {
		if s.Name == "" {
			return fmt.Errorf("config: stage %d: 'name' is required", i+1)
		}
		if seen[s.Name] {
			return fmt.Errorf("config: duplicate stage name %q", s.Name)
		}
		seen[s.Name] = true
		if strings.TrimSpace(s.Instructions) == "" {
			return fmt.Errorf("config: stage %q: 'instructions' is required", s.Name)
		}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("config: log: unknown level %q (must be debug, info, warn, or error)", cfg.Log.Level)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(".sitegen", "sitegen.log")
	}
	if cfg.Log.File != "-" {
		cfg.Log.File = resolve(projectRoot, cfg.Log.File)
	}

	return nil
}

func validateProfile(name string, p Profile) error {
	if p.MaxTokens < 0 {
		return fmt.Errorf("config: %s: max-tokens must be >= 0", name)
	}
	if t := p.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("config: %s: temperature must be between 0 and 2", name)
	}
	return nil
}

// validateOutputDir rejects output directories whose clearing would remove
// the project or the state sitegen keeps beside it.
func validateOutputDir(cfg *Config, projectRoot string) error {
	out := filepath.Clean(cfg.OutputDir)
	root := filepath.Clean(projectRoot)
	if within(out, root) {
		return fmt.Errorf("config: 'output-dir' %s must not be the project root or contain it", cfg.OutputDir)
	}
	guarded := []struct{ key, path string }{
		{".sitegen", filepath.Join(root, ".sitegen")},
		{"asset-dir", cfg.AssetDir},
		{"backup-dir", cfg.BackupDir},
	}
	for _, g := range guarded {
		if within(out, g.path) || within(g.path, out) {
			return fmt.Errorf("config: 'output-dir' %s overlaps %s %s", cfg.OutputDir, g.key, g.path)
		}
	}
	if within(out, cfg.Templates) {
		return fmt.Errorf("config: 'output-dir' %s contains templates file %s", cfg.OutputDir, cfg.Templates)
	}
	return nil
}

// within reports whether p is dir or lies beneath it.
func within(dir, p string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(p))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
