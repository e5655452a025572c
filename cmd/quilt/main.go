// Package main provides the quilt CLI entry point.
package main

import (
	"os"

	"github.com/quiltcss/quilt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
