// Package watch implements the incremental rebuild coordinator and the
// filesystem event source feeding it.
//
// The coordinator is a serial state machine: the watcher delivers one
// event at a time, and every unit of work it triggers (a single bundle,
// a shared-file rewrite, or a full rebuild) runs to completion,
// including its I/O, before the next event is accepted. That strict
// serialization is what keeps the in-memory build state consistent with
// disk without any locking.
package watch

// Kind identifies a watcher notification.
type Kind int

const (
	// KindReady fires once after the initial scan; it triggers the
	// first full build.
	KindReady Kind = iota
	// KindAdded reports a new source file.
	KindAdded
	// KindChanged reports a modified source file.
	KindChanged
	// KindRemoved reports a deleted source file.
	KindRemoved
	// KindAny is the catch-all fired after every underlying
	// notification; it drives error recovery.
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindReady:
		return "ready"
	case KindAdded:
		return "added"
	case KindChanged:
		return "changed"
	case KindRemoved:
		return "removed"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Event is one serialized watcher notification. Path is empty for
// KindReady.
type Event struct {
	Kind Kind
	Path string
}
