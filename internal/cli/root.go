// Package cli provides the command-line interface for quilt.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quiltcss/quilt/internal/cli/commands"
)

// Version information (set at build time).
var (
	Version = "0.1.0"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quilt",
		Short: "Quilt - incremental stylesheet bundler",
		Long: `Quilt compiles a tree of stylesheets into per-page CSS files plus one
shared file holding the imports used by every page, and keeps that
output minimal and correct while watching for changes.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./quilt.yaml)")
	rootCmd.PersistentFlags().String("source-dir", "", "root of the stylesheet source tree")
	rootCmd.PersistentFlags().String("out-dir", "", "root of the output tree")
	rootCmd.PersistentFlags().String("shared-path", "", "path of the shared output stylesheet")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log each compiled path")
	rootCmd.PersistentFlags().Bool("minify", false, "minify compiled output")

	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
