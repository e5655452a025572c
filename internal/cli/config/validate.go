package config

import (
	"fmt"
	"os"
)

// Validate checks the loaded configuration for consistency. It is
// called once after loading, before any collaborator is constructed.
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir is required")
	}
	info, err := os.Stat(c.SourceDir)
	if err != nil {
		return fmt.Errorf("source_dir %s: %w", c.SourceDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source_dir %s is not a directory", c.SourceDir)
	}

	if c.OutDir == "" {
		return fmt.Errorf("out_dir is required")
	}
	if c.OutDir == c.SourceDir {
		return fmt.Errorf("out_dir must differ from source_dir")
	}

	serve := c.GetServe()
	if serve.Port < 1 || serve.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", serve.Port)
	}
	return nil
}
