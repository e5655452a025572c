package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quiltcss/quilt/internal/bundle"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entries, their tracked imports, and the common set",
		Long: `Compile every entry in memory and print each entry with its tracked
imports, followed by the common-import set. No output files are
written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	cmdCtx, err := NewContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Config
	out := cmd.OutOrStdout()

	entries, err := bundle.DiscoverEntries(cfg.SourceDir)
	if err != nil {
		return fmt.Errorf("failed to scan source root: %w", err)
	}

	artifacts := make(map[string]*bundle.Artifact, len(entries))
	failures := 0
	fmt.Fprintf(out, "Entries (%d):\n", len(entries))
	for _, entry := range entries {
		rel, relErr := filepath.Rel(cfg.SourceDir, entry)
		if relErr != nil {
			rel = entry
		}
		art, err := bundle.CompileEntry(cmdCtx.Compiler, cfg.SourceDir, entry)
		if err != nil {
			failures++
			fmt.Fprintf(out, "  %s  (compile failed)\n", rel)
			cmdCtx.Logger.Error("compile failed", "path", entry, "err", err)
			continue
		}
		artifacts[entry] = art
		fmt.Fprintf(out, "  %s\n", rel)
		for _, imp := range art.Imports {
			fmt.Fprintf(out, "    -> %s\n", imp)
		}
	}

	common := bundle.IdentifyCommon(artifacts)
	fmt.Fprintf(out, "Common imports (%d):\n", len(common))
	for _, imp := range common {
		fmt.Fprintf(out, "  %s\n", imp)
	}

	if failures > 0 {
		return fmt.Errorf("%d entries failed to compile", failures)
	}
	return nil
}
