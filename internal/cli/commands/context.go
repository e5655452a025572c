// Package commands implements the quilt subcommands.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quiltcss/quilt/internal/bundle"
	"github.com/quiltcss/quilt/internal/cli/config"
	"github.com/quiltcss/quilt/internal/compiler"
)

// Context carries the resolved configuration and the collaborators
// every subcommand needs.
type Context struct {
	Config   *config.Config
	Logger   *slog.Logger
	Compiler compiler.Compiler
	Writer   *bundle.Writer
}

// NewContext loads configuration from the command's flags and builds
// the shared collaborators.
func NewContext(cmd *cobra.Command) (*Context, error) {
	flags := cmd.Root().PersistentFlags()
	cfgFile, _ := flags.GetString("config")

	cfg, err := config.LoadConfig(cfgFile, flags)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	comp := &compiler.ESBuild{Minify: cfg.Minify}
	writer := bundle.NewWriter(comp, cfg.SourceDir, cfg.OutDir, cfg.SharedPath, logger)

	return &Context{
		Config:   cfg,
		Logger:   logger,
		Compiler: comp,
		Writer:   writer,
	}, nil
}
