package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jorge-barreto/sitegen/internal/config"
	"github.com/jorge-barreto/sitegen/internal/gateway"
	"github.com/jorge-barreto/sitegen/internal/gateway/claude"
	"github.com/jorge-barreto/sitegen/internal/gateway/gemini"
	"github.com/jorge-barreto/sitegen/internal/gateway/ollama"
)

// newGateway builds the model client named by the provider config.
func newGateway(ctx context.Context, p config.Provider, log *zap.Logger) (gateway.Gateway, error) {
	switch p.Type {
	case "claude":
		if os.Getenv("CLAUDECODE") != "" {
			return nil, fmt.Errorf("the claude provider cannot run inside Claude Code (CLAUDECODE env var is set). Run from a regular terminal")
		}
		c := claude.New(p.Model, p.CallTimeout(), log.Named("claude"))
		if err := c.Preflight(); err != nil {
			return nil, err
		}
		return c, nil
	case "ollama":
		c, err := ollama.New(p.Model, p.CallTimeout())
		if err != nil {
			return nil, fmt.Errorf("ollama client: %w", err)
		}
		return c, nil
	case "gemini":
		c, err := gemini.New(ctx, p.Model, p.APIKeyEnv, p.CallTimeout())
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown provider type %q", p.Type)
}
