package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quiltcss/quilt/internal/devserver"
	"github.com/quiltcss/quilt/internal/notify"
	"github.com/quiltcss/quilt/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build once, then rebuild incrementally on changes",
		Long: `Run an initial full build, then watch the source tree and redo the
minimal work for each change. With --serve, the output tree is served
over HTTP with a live-reload event stream at /__reload.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}
	cmd.Flags().Bool("serve", false, "serve the output tree with live reload")
	cmd.Flags().Int("port", 0, "dev server port")
	return cmd
}

func runWatch(cmd *cobra.Command) error {
	cmdCtx, err := NewContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Config

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveFlag, _ := cmd.Flags().GetBool("serve")
	portFlag, _ := cmd.Flags().GetInt("port")
	serve := cfg.GetServe()
	if serveFlag {
		serve.Enabled = true
	}
	if portFlag != 0 {
		serve.Port = portFlag
	}

	var notifier *notify.Notifier
	if serve.Enabled {
		notifier = notify.New()
		srv := devserver.New(devserver.Config{
			OutDir:   cfg.OutDir,
			Port:     serve.Port,
			Notifier: notifier,
			Logger:   cmdCtx.Logger,
		})
		go func() {
			if err := srv.Serve(ctx); err != nil {
				cmdCtx.Logger.Error("dev server failed", "err", err)
			}
		}()
	}

	source, err := watch.NewSource(cfg.SourceDir, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	coord := watch.New(watch.Config{
		Compiler:  cmdCtx.Compiler,
		Writer:    cmdCtx.Writer,
		SourceDir: cfg.SourceDir,
		Logger:    cmdCtx.Logger,
		Notifier:  notifier,
	})

	cmdCtx.Logger.Info("watching", "source", cfg.SourceDir, "out", cfg.OutDir)
	if err := coord.Run(ctx, source.Events()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
