// Package claude runs completions through the claude CLI in print mode.
package claude

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/sitegen/internal/gateway"
)

// Client invokes `claude -p` and streams its stream-json output.
// The CLI has no sampling controls, so Request.Temperature and
// Request.MaxTokens are not forwarded.
type Client struct {
	Binary  string        // defaults to "claude"
	Model   string        // passed as --model when set
	Timeout time.Duration // per call; zero means no limit
	Logger  *zap.Logger   // receives per-call cost and stop reason; nil disables
}

// New returns a client for model with a per-call timeout.
func New(model string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{Binary: "claude", Model: model, Timeout: timeout, Logger: logger}
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Preflight checks that the claude binary is on PATH.
func (c *Client) Preflight() error {
	if _, err := exec.LookPath(c.binary()); err != nil {
		return fmt.Errorf("required binary not found in PATH: %s", c.binary())
	}
	return nil
}

func (c *Client) binary() string {
	if c.Binary == "" {
		return "claude"
	}
	return c.Binary
}

func buildArgs(model string, req gateway.Request) []string {
	args := []string{"-p", req.Prompt,
		"--output-format", "stream-json",
		"--verbose",
		"--include-partial-messages",
	}
	if model != "" {
		args = append(args, "--model", model)
	}
	if req.System != "" {
		args = append(args, "--append-system-prompt", req.System)
	}
	return args
}

// Complete implements gateway.Gateway.
func (c *Client) Complete(ctx context.Context, req gateway.Request, fn gateway.DeltaFunc) (gateway.StopReason, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.binary(), buildArgs(c.Model, req)...)
	cmd.Env = filteredEnv()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = 5 * time.Second

	var stderr strings.Builder
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return gateway.StopUnknown, err
	}
	if err := cmd.Start(); err != nil {
		return gateway.StopUnknown, fmt.Errorf("starting claude: %w", err)
	}

	res, streamErr := processStream(ctx, stdout, fn)
	code, waitErr := exitCode(cmd.Wait())
	if ctx.Err() != nil {
		return gateway.StopUnknown, ctx.Err()
	}
	if streamErr != nil {
		return gateway.StopUnknown, streamErr
	}
	if waitErr != nil {
		return gateway.StopUnknown, waitErr
	}
	if code != 0 {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "non-zero exit"
		}
		return gateway.StopUnknown, fmt.Errorf("claude exited with code %d: %s", code, msg)
	}
	c.logger().Debug("claude call finished",
		zap.String("mode", string(req.Mode)),
		zap.String("stop", string(res.Stop)),
		zap.Float64("cost_usd", res.CostUSD),
		zap.Bool("is_error", res.IsError))
	if res.IsError {
		return gateway.StopUnknown, fmt.Errorf("claude reported an error: %s", res.ResultText)
	}
	return res.Stop, nil
}

// filteredEnv returns the current environment minus CLAUDECODE*, so the CLI
// does not believe it is nested inside another session.
func filteredEnv() []string {
	var env []string
	for _, e := range os.Environ() {
		key := strings.SplitN(e, "=", 2)[0]
		if strings.HasPrefix(key, "CLAUDECODE") {
			continue
		}
		env = append(env, e)
	}
	return env
}

// exitCode extracts an exit code from a command error.
// Returns (code, nil) for ExitError, (0, err) for other errors, (0, nil) for nil.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}
