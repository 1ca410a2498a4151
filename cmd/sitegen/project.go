package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jorge-barreto/sitegen/internal/config"
	"github.com/jorge-barreto/sitegen/internal/logging"
)

// project is the loaded .sitegen/ directory of the current workspace.
type project struct {
	root         string
	artifactsDir string
	cfg          *config.Config
	log          *zap.Logger
	closeLog     func() error
}

func loadProject() (*project, error) {
	root, err := findProjectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(root, ".sitegen", "config.yaml"), root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log, closeLog, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &project{
		root:         root,
		artifactsDir: filepath.Join(root, ".sitegen", "artifacts"),
		cfg:          cfg,
		log:          log.With(zap.String("project", cfg.Name)),
		closeLog:     closeLog,
	}, nil
}

func (p *project) close() {
	if err := p.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing log: %v\n", err)
	}
}

// findProjectRoot walks up from cwd looking for .sitegen/config.yaml.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".sitegen", "config.yaml")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .sitegen/config.yaml found (searched from cwd to root); run 'sitegen init'")
		}
		dir = parent
	}
}
