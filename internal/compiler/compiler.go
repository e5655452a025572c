// Package compiler defines the stylesheet compilation boundary.
//
// The bundler treats the stylesheet-to-CSS transform as an opaque
// collaborator behind the Compiler interface. The only extension point
// is the ImportHook, consulted once per import directive encountered
// during a compile: a handled import is substituted with the hook's
// contents instead of being inlined, which is how the bundler tracks
// dependencies without duplicating their CSS into every page.
package compiler

// Result holds the output of one compile invocation.
type Result struct {
	CSS string
}

// HookResult is returned by an ImportHook for an import it handles.
// Contents replaces the import in the compiled output; the bundler
// always substitutes the empty string so tracked imports contribute
// nothing to the page they appear in.
type HookResult struct {
	Contents string
}

// ImportHook is invoked synchronously for every import directive URL
// encountered while compiling. Returning nil declines the import and
// lets normal resolution proceed.
type ImportHook func(url string) *HookResult

// Compiler transforms one stylesheet source file into CSS. A nil hook
// requests a plain transform with normal import resolution.
type Compiler interface {
	Compile(path string, hook ImportHook) (Result, error)
}

// CompileError reports a transform failure with a formatted diagnostic.
// It is fatal to the current build cycle but never to the process.
type CompileError struct {
	Path             string
	FormattedMessage string
}

func (e *CompileError) Error() string {
	return e.FormattedMessage
}
