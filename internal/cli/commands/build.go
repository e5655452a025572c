package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quiltcss/quilt/internal/watch"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile all entry stylesheets once",
		Long: `Compile every entry stylesheet under the source tree, write the
per-page outputs and the shared stylesheet, and exit.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd)
		},
	}
}

func runBuild(cmd *cobra.Command) error {
	cmdCtx, err := NewContext(cmd)
	if err != nil {
		return err
	}

	coord := watch.New(watch.Config{
		Compiler:  cmdCtx.Compiler,
		Writer:    cmdCtx.Writer,
		SourceDir: cmdCtx.Config.SourceDir,
		Logger:    cmdCtx.Logger,
	})
	if err := coord.Build(); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}
