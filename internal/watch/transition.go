package watch

import "github.com/quiltcss/quilt/internal/bundle"

// Action is the unit of work one event maps onto.
type Action int

const (
	// ActionNone drops the event.
	ActionNone Action = iota
	// ActionWarnNotReady reports an event arriving before any build.
	ActionWarnNotReady
	// ActionFullBuild recompiles every entry from the source root.
	ActionFullBuild
	// ActionAbsorb clears the one-shot dedup flag and drops the event.
	ActionAbsorb
	// ActionRecover clears the error flag, then runs a full build.
	ActionRecover
	// ActionWriteShared rewrites only the shared stylesheet.
	ActionWriteShared
	// ActionBundleImporters re-bundles every artifact importing the
	// changed partial.
	ActionBundleImporters
	// ActionChangedEntry recompiles a changed entry and applies the
	// minimal follow-up work.
	ActionChangedEntry
	// ActionAddedEntry compiles a new entry and inserts its artifact.
	ActionAddedEntry
	// ActionRemovedPartial handles deletion of a referenced partial.
	ActionRemovedPartial
	// ActionRemovedEntry drops an entry and its output.
	ActionRemovedEntry
)

// decide maps one incoming event onto the work it requires. It reads
// the state snapshot and performs no I/O, so the transition table can
// be tested without a filesystem or compiler.
//
// The generic event is the only one handled while the error flag is
// set: the first generic notification after a failure is absorbed by
// the dedup flag (it belongs to the edit that just failed), and any
// later one triggers recovery. Everything else is suppressed until
// recovery has run.
func decide(st *bundle.State, built, dedup bool, ev Event) Action {
	switch ev.Kind {
	case KindReady:
		return ActionFullBuild
	case KindAny:
		if !st.ErrorFlag {
			return ActionNone
		}
		if dedup {
			return ActionAbsorb
		}
		return ActionRecover
	}

	if !built {
		return ActionWarnNotReady
	}
	if st.ErrorFlag {
		return ActionNone
	}

	partial := bundle.IsPartial(ev.Path)
	switch ev.Kind {
	case KindChanged:
		if !partial {
			return ActionChangedEntry
		}
		if bundle.Contains(st.Common, ev.Path) {
			return ActionWriteShared
		}
		if referencedBy(st, ev.Path) == nil {
			return ActionNone
		}
		return ActionBundleImporters
	case KindAdded:
		if partial {
			// Partials are inert until referenced.
			return ActionNone
		}
		return ActionAddedEntry
	case KindRemoved:
		if !partial {
			return ActionRemovedEntry
		}
		if referencedBy(st, ev.Path) == nil {
			return ActionNone
		}
		return ActionRemovedPartial
	}
	return ActionNone
}

// referencedBy returns the sorted entry paths of artifacts whose import
// set contains the given partial, or nil if none do.
func referencedBy(st *bundle.State, partial string) []string {
	var entries []string
	for _, entry := range st.SortedEntries() {
		if bundle.Contains(st.Artifacts[entry].Imports, partial) {
			entries = append(entries, entry)
		}
	}
	return entries
}
