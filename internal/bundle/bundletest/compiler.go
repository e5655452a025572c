// Package bundletest provides a scripted stand-in for the compiler
// collaborator, so bundling and coordination logic can be tested
// against real files without invoking a stylesheet pipeline.
package bundletest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/quiltcss/quilt/internal/compiler"
)

var importDirective = regexp.MustCompile(`^\s*@(?:use|import)\s+"([^"]+)"\s*;\s*$`)

// Compiler reads the source file and resolves @use/@import directives
// line by line. Each URL is offered to the hook first; a handled import
// contributes the hook's substitute contents, an unhandled relative URL
// is inlined from disk, and anything else fails the compile. Remaining
// lines pass through verbatim.
type Compiler struct {
	// Calls records every path handed to Compile, in order.
	Calls []string
	// FailPaths forces a CompileError for matching source paths.
	FailPaths map[string]bool
}

// New returns an empty fake compiler.
func New() *Compiler {
	return &Compiler{FailPaths: make(map[string]bool)}
}

// Compile implements compiler.Compiler.
func (c *Compiler) Compile(path string, hook compiler.ImportHook) (compiler.Result, error) {
	c.Calls = append(c.Calls, path)
	if c.FailPaths[path] {
		return compiler.Result{}, &compiler.CompileError{
			Path:             path,
			FormattedMessage: fmt.Sprintf("%s:1:1: forced failure", path),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return compiler.Result{}, &compiler.CompileError{
			Path:             path,
			FormattedMessage: fmt.Sprintf("%s: %v", path, err),
		}
	}

	var out strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		m := importDirective.FindStringSubmatch(line)
		if m == nil {
			if strings.TrimSpace(line) != "" {
				out.WriteString(strings.TrimSpace(line))
			}
			continue
		}
		url := m[1]
		if hook != nil {
			if r := hook(url); r != nil {
				out.WriteString(r.Contents)
				continue
			}
		}
		resolved := filepath.Join(filepath.Dir(path), filepath.FromSlash(url))
		inlined, err := c.Compile(resolved, nil)
		if err != nil {
			return compiler.Result{}, &compiler.CompileError{
				Path:             path,
				FormattedMessage: fmt.Sprintf("%s: cannot resolve %q", path, url),
			}
		}
		out.WriteString(inlined.CSS)
	}
	return compiler.Result{CSS: out.String()}, nil
}

// CallCount returns how many times path was compiled.
func (c *Compiler) CallCount(path string) int {
	n := 0
	for _, p := range c.Calls {
		if p == path {
			n++
		}
	}
	return n
}

// Reset clears the recorded calls.
func (c *Compiler) Reset() {
	c.Calls = nil
}
