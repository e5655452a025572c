package compiler

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// ESBuild compiles stylesheets with the esbuild CSS pipeline.
type ESBuild struct {
	// Minify enables whitespace/identifier/syntax minification.
	Minify bool
}

// hookNamespace marks import paths claimed by the ImportHook so the
// OnLoad callback can substitute the hook's contents.
const hookNamespace = "quilt-hook"

// Compile bundles a single stylesheet in memory and returns its CSS.
// When hook is non-nil, every import path is offered to it before
// normal resolution.
func (c *ESBuild) Compile(path string, hook ImportHook) (Result, error) {
	opts := api.BuildOptions{
		EntryPoints: []string{path},
		Bundle:      true,
		Write:       false,
		Outdir:      "out",
		Loader: map[string]api.Loader{
			".css": api.LoaderCSS,
		},
		LogLevel: api.LogLevelSilent,
	}
	if c.Minify {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
	}
	if hook != nil {
		opts.Plugins = []api.Plugin{hookPlugin(hook)}
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		return Result{}, &CompileError{
			Path:             path,
			FormattedMessage: formatMessages(result.Errors),
		}
	}

	for _, file := range result.OutputFiles {
		if strings.HasSuffix(file.Path, ".css") {
			return Result{CSS: string(file.Contents)}, nil
		}
	}
	return Result{}, &CompileError{
		Path:             path,
		FormattedMessage: fmt.Sprintf("%s: no CSS output produced", path),
	}
}

// hookPlugin bridges esbuild's resolve/load callbacks to an ImportHook.
// Handled imports are parked in a private namespace and loaded from the
// hook's substitute contents; declined imports resolve normally.
func hookPlugin(hook ImportHook) api.Plugin {
	return api.Plugin{
		Name: "quilt-import-hook",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `.*`},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					if args.Kind == api.ResolveEntryPoint {
						return api.OnResolveResult{}, nil
					}
					r := hook(args.Path)
					if r == nil {
						return api.OnResolveResult{}, nil
					}
					return api.OnResolveResult{
						Path:       args.Path,
						Namespace:  hookNamespace,
						PluginData: r.Contents,
					}, nil
				})
			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: hookNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					contents, _ := args.PluginData.(string)
					return api.OnLoadResult{
						Contents: &contents,
						Loader:   api.LoaderCSS,
					}, nil
				})
		},
	}
}

// formatMessages renders esbuild diagnostics as file:line:col lines.
func formatMessages(msgs []api.Message) string {
	var b strings.Builder
	for _, m := range msgs {
		if m.Location != nil {
			fmt.Fprintf(&b, "%s:%d:%d: %s\n",
				m.Location.File, m.Location.Line, m.Location.Column, m.Text)
		} else {
			fmt.Fprintf(&b, "%s\n", m.Text)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
