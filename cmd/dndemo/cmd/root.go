// Package cmd implements the dndemo CLI commands.
//
// The root command loads configuration and builds the logger; subcommands
// load a scene file and either replay its gestures or render it.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-drift/dnd/cmd/dndemo/internal/config"
	"github.com/go-drift/dnd/cmd/dndemo/internal/observability"
	"github.com/go-drift/dnd/cmd/dndemo/internal/scene"
	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/graphics"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// app carries what PersistentPreRunE prepared for the subcommands.
type app struct {
	configFile string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "dndemo",
		Short: "dndemo - replay and render drag and drop scenes",
		Long: `dndemo builds a window from a YAML scene of ordered containers,
replays scripted drags through the drag and drop core, and prints or
renders the result.

Configuration is read from dnd.yaml in the working directory (or --config)
and DND_* environment variables, e.g. DND_DRAG_DISTANCE=8.`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.NewViper(a.configFile))
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.Logger, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			errors.SetHandler(&errors.LogHandler{Logger: logger.Named("errors")})
			errors.SetStrict(cfg.Drag.Strict)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file (default is ./dnd.yaml)")
	root.AddCommand(newRunCmd(a), newSnapshotCmd(a))
	return root, a
}

// Execute runs the CLI with os.Args.
func Execute() error {
	root, _ := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadScene reads path and builds it with the configured controller
// settings.
func (a *app) loadScene(path string) (*scene.Scene, error) {
	doc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	return scene.Build(doc, scene.Options{
		Logger:         a.logger,
		DragDistance:   a.cfg.Drag.Distance,
		PreviewOpacity: a.cfg.Drag.PreviewOpacity,
		Background:     a.background(),
	}), nil
}

func (a *app) background() graphics.Color {
	if a.cfg.Drag.Transparent {
		return graphics.ColorTransparent
	}
	return graphics.ColorBlack
}
