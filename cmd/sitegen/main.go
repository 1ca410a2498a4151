package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/jorge-barreto/sitegen/internal/backup"
	"github.com/jorge-barreto/sitegen/internal/components"
	"github.com/jorge-barreto/sitegen/internal/doctor"
	"github.com/jorge-barreto/sitegen/internal/docs"
	"github.com/jorge-barreto/sitegen/internal/library"
	"github.com/jorge-barreto/sitegen/internal/scaffold"
	"github.com/jorge-barreto/sitegen/internal/stages"
	"github.com/jorge-barreto/sitegen/internal/state"
	"github.com/jorge-barreto/sitegen/internal/ux"
)

func main() {
	app := &cli.Command{
		Name:        "sitegen",
		Usage:       "Generate websites and components with a language model",
		Description: "Run 'sitegen docs' for documentation on config, stages, templates, and more.",
		Commands: []*cli.Command{
			initCmd(),
			buildCmd(),
			componentsCmd(),
			statusCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Generate a complete project from a description",
		ArgsUsage: "<prompt>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the stage plan without calling a model"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			prompt := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if prompt == "" {
				return fmt.Errorf("prompt argument is required")
			}

			p, err := loadProject()
			if err != nil {
				return err
			}
			defer p.close()

			if cmd.Bool("dry-run") {
				stages.DryRunPrint(prompt, p.cfg.Stages, p.cfg.OutputDir)
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			gw, err := newGateway(ctx, p.cfg.Provider, p.log)
			if err != nil {
				return err
			}

			c := &stages.Controller{
				Gateway:      gw,
				Profile:      p.cfg.GeneratorProfile(),
				OutputDir:    p.cfg.OutputDir,
				ArtifactsDir: p.artifactsDir,
				Logger:       p.log,
			}
			p.log.Info("build started", zap.Int("stages", len(p.cfg.Stages)), zap.String("provider", p.cfg.Provider.Type))
			gc, err := c.Run(ctx, prompt, p.cfg.Stages)
			if err != nil {
				return err
			}
			for _, s := range gc.Summary() {
				fmt.Printf("  %s%d%s  %-20s %d files\n", ux.Dim, s.Number, ux.Reset, s.Name, s.Files)
			}
			fmt.Println()
			return nil
		},
	}
}

func componentsCmd() *cli.Command {
	return &cli.Command{
		Name:  "components",
		Usage: "Generate filled component templates into the asset directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Website or business name", Required: true},
			&cli.StringFlag{Name: "industry", Usage: "Industry the site serves"},
			&cli.StringFlag{Name: "description", Usage: "One-line description of the business"},
			&cli.StringFlag{Name: "style", Usage: "Visual style preference"},
			&cli.StringFlag{Name: "personality", Usage: "Brand personality"},
			&cli.StringSliceFlag{Name: "kind", Usage: "Component kind to generate (repeatable; default all kinds in the library)"},
			&cli.StringFlag{Name: "creativity", Usage: "conservative, balanced or experimental", Value: "balanced"},
			&cli.BoolFlag{Name: "backup", Usage: "Snapshot the asset directory before writing"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			creativity, err := components.ParseCreativity(cmd.String("creativity"))
			if err != nil {
				return err
			}

			p, err := loadProject()
			if err != nil {
				return err
			}
			defer p.close()

			lib, err := library.Load(p.cfg.Templates)
			if err != nil {
				return fmt.Errorf("loading templates: %w", err)
			}
			kinds := cmd.StringSlice("kind")
			if len(kinds) == 0 {
				kinds = lib.Kinds()
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			gw, err := newGateway(ctx, p.cfg.Provider, p.log)
			if err != nil {
				return err
			}

			o := &components.Orchestrator{
				Gateway:     gw,
				Templates:   lib,
				Backups:     backup.New(p.cfg.BackupDir),
				Selector:    p.cfg.SelectorProfile(),
				Generator:   p.cfg.GeneratorProfile(),
				AssetDir:    p.cfg.AssetDir,
				Ext:         p.cfg.ComponentExt,
				Concurrency: p.cfg.Concurrency,
				Logger:      p.log,
			}
			report := o.Run(ctx, components.Request{
				Website: components.WebsiteContext{
					Name:             cmd.String("name"),
					Industry:         cmd.String("industry"),
					Description:      cmd.String("description"),
					StylePreference:  cmd.String("style"),
					BrandPersonality: cmd.String("personality"),
				},
				Kinds:      kinds,
				Creativity: creativity,
			}, cmd.Bool("backup"))

			if report.Backup != nil {
				ux.BackupCreated(report.Backup.BackupPath, report.Backup.Files)
			}
			lines := make([]ux.KindLine, len(report.Results))
			for i, r := range report.Results {
				lines[i] = ux.KindLine{
					Kind:       r.Kind,
					TemplateID: r.TemplateID,
					Source:     string(r.Source),
					Path:       relPath(p.root, r.Path),
					Changes:    r.Changes,
					Succeeded:  r.Succeeded,
					Error:      r.ErrorMessage(),
				}
			}
			ux.ComponentReport(lines)

			if failed := report.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d of %d components failed", len(failed), len(report.Results))
			}
			return nil
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the state of the last build",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			defer p.close()

			st, err := state.Load(p.artifactsDir)
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}
			ux.RenderStatus(p.cfg.StageNames(), st, p.artifactsDir)
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Diagnose a failed build using the configured model",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			defer p.close()

			st, err := state.Load(p.artifactsDir)
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			gw, err := newGateway(ctx, p.cfg.Provider, p.log)
			if err != nil {
				return err
			}
			if err := doctor.Run(ctx, gw, p.cfg.GeneratorProfile(), p.artifactsDir, p.cfg.Stages, st, os.Stdout); err != nil {
				return err
			}
			if st.Status == state.StatusFailed || st.Status == state.StatusInterrupted {
				ux.RetryHint()
			}
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a new .sitegen/ directory with example config and templates",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'sitegen docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

func relPath(root, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
