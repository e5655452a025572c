// Package config provides configuration management for the quilt CLI.
//
// Configuration is layered: built-in defaults, then quilt.yaml from the
// project root, then QUILT_* environment variables, then command-line
// flags, each overriding the previous.
package config

// ServeConfig holds dev server options for watch mode.
type ServeConfig struct {
	Enabled bool `koanf:"enabled"`
	Port    int  `koanf:"port"`
}

// Config holds all CLI configuration options. Path fields are absolute
// after loading.
type Config struct {
	// ProjectRoot anchors relative path resolution. It is inferred
	// from the config file location or the working directory, never
	// read from the file itself.
	ProjectRoot string `koanf:"-"`

	// SourceDir is the root of the stylesheet source tree.
	SourceDir string `koanf:"source_dir"`
	// OutDir is the root of the output tree, mirroring SourceDir.
	OutDir string `koanf:"out_dir"`
	// SharedPath is where the shared stylesheet is written. Defaults
	// to shared.css inside OutDir.
	SharedPath string `koanf:"shared_path"`
	// Verbose logs each compiled path.
	Verbose bool `koanf:"verbose"`
	// Minify enables output minification.
	Minify bool `koanf:"minify"`

	Serve *ServeConfig `koanf:"serve"`
}

// GetServe returns the serve config with defaults applied.
func (c *Config) GetServe() *ServeConfig {
	if c.Serve == nil {
		return &ServeConfig{Port: DefaultServePort}
	}
	s := c.Serve
	if s.Port == 0 {
		s.Port = DefaultServePort
	}
	return s
}
