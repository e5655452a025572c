// Package bundle implements the core of the incremental bundler: the
// per-entry compiled artifacts, the common-import analyzer, and the
// writer that emits page outputs plus the shared stylesheet.
package bundle

import (
	"path/filepath"
	"sort"
	"strings"
)

// Ext is the stylesheet source and output extension.
const Ext = ".css"

// MarkerPrefix marks an import URL as a tracked, non-inlined dependency.
// The remainder resolves against the source root.
const MarkerPrefix = "!bundler/"

// Artifact is the compiled record for one entry stylesheet. It is
// replaced wholesale whenever its entry is recompiled.
type Artifact struct {
	// Entry is the absolute path of the source file.
	Entry string
	// Imports are the tracked import references recorded during
	// compilation, in directive order, deduplicated.
	Imports []string
	// CSS is the compiled body of the entry itself, with tracked
	// imports contributing nothing.
	CSS string
	// Failed marks an artifact whose last compile errored.
	Failed bool
}

// State is the in-memory bookkeeping for one build or watch session.
// It is owned exclusively by the coordinator and is never persisted.
type State struct {
	// Artifacts holds exactly one artifact per known entry path.
	Artifacts map[string]*Artifact
	// Common is the set of imports present in every artifact, in the
	// order it was computed. It always equals the intersection of all
	// artifact import sets, except transiently after a shared partial
	// is removed, when it is invalidated pending a full rebuild.
	Common []string
	// ErrorFlag is set by any compile failure or unrecoverable
	// dependency removal and cleared by the recovery path.
	ErrorFlag bool
}

// NewState returns an empty build state.
func NewState() *State {
	return &State{Artifacts: make(map[string]*Artifact)}
}

// SortedEntries returns the artifact entry paths in lexical order, for
// deterministic iteration over the artifact map.
func (s *State) SortedEntries() []string {
	entries := make([]string, 0, len(s.Artifacts))
	for entry := range s.Artifacts {
		entries = append(entries, entry)
	}
	sort.Strings(entries)
	return entries
}

// IsPartial reports whether path names a partial: a source file whose
// base name starts with an underscore. Partials are never compiled as
// entries, only pulled in via import.
func IsPartial(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "_")
}
