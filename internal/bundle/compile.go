package bundle

import (
	"path/filepath"
	"strings"

	"github.com/quiltcss/quilt/internal/compiler"
)

// CompileEntry compiles one entry stylesheet, intercepting marked
// imports so they are tracked instead of inlined.
//
// The supplied hook claims any import URL carrying the bundler marker:
// it resolves the remainder against sourceDir to an absolute path,
// records it on the artifact (directive order, deduplicated), and
// substitutes empty contents. Unmarked URLs are declined and resolve
// normally.
//
// A transform failure returns the compiler's error alongside an
// artifact with Failed set; it is the caller's job to fold that into
// its error flag rather than letting it escape.
func CompileEntry(c compiler.Compiler, sourceDir, path string) (*Artifact, error) {
	art := &Artifact{Entry: path}

	hook := func(url string) *compiler.HookResult {
		if !strings.HasPrefix(url, MarkerPrefix) {
			return nil
		}
		rel := strings.TrimPrefix(url, MarkerPrefix)
		abs := filepath.Join(sourceDir, filepath.FromSlash(rel))
		if !Contains(art.Imports, abs) {
			art.Imports = append(art.Imports, abs)
		}
		return &compiler.HookResult{Contents: ""}
	}

	res, err := c.Compile(path, hook)
	if err != nil {
		art.Failed = true
		return art, err
	}
	art.CSS = res.CSS
	return art, nil
}
