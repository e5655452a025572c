package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quiltcss/quilt/internal/bundle"
)

func stateWith(common []string, artifacts map[string][]string) *bundle.State {
	st := bundle.NewState()
	st.Common = common
	for entry, imports := range artifacts {
		st.Artifacts[entry] = &bundle.Artifact{Entry: entry, Imports: imports}
	}
	return st
}

func TestDecide(t *testing.T) {
	referencing := stateWith(
		[]string{"/src/_c.css"},
		map[string][]string{
			"/src/a.css": {"/src/_c.css", "/src/_p.css"},
			"/src/b.css": {"/src/_c.css"},
		},
	)
	errored := stateWith(nil, nil)
	errored.ErrorFlag = true

	tests := []struct {
		name  string
		st    *bundle.State
		built bool
		dedup bool
		ev    Event
		want  Action
	}{
		{"ready triggers full build", bundle.NewState(), false, false, Event{Kind: KindReady}, ActionFullBuild},
		{"any without error is a no-op", referencing, true, false, Event{Kind: KindAny, Path: "/src/a.css"}, ActionNone},
		{"any with error and dedup absorbs", errored, true, true, Event{Kind: KindAny}, ActionAbsorb},
		{"any with error recovers", errored, true, false, Event{Kind: KindAny}, ActionRecover},
		{"event before build warns", bundle.NewState(), false, false, Event{Kind: KindChanged, Path: "/src/a.css"}, ActionWarnNotReady},
		{"specific events suppressed during error", errored, true, false, Event{Kind: KindChanged, Path: "/src/a.css"}, ActionNone},

		{"changed entry", referencing, true, false, Event{Kind: KindChanged, Path: "/src/a.css"}, ActionChangedEntry},
		{"changed common partial rewrites shared", referencing, true, false, Event{Kind: KindChanged, Path: "/src/_c.css"}, ActionWriteShared},
		{"changed referenced partial rebundles importers", referencing, true, false, Event{Kind: KindChanged, Path: "/src/_p.css"}, ActionBundleImporters},
		{"changed unreferenced partial ignored", referencing, true, false, Event{Kind: KindChanged, Path: "/src/_x.css"}, ActionNone},

		{"added partial is inert", referencing, true, false, Event{Kind: KindAdded, Path: "/src/_new.css"}, ActionNone},
		{"added entry", referencing, true, false, Event{Kind: KindAdded, Path: "/src/c.css"}, ActionAddedEntry},

		{"removed entry", referencing, true, false, Event{Kind: KindRemoved, Path: "/src/a.css"}, ActionRemovedEntry},
		{"removed referenced partial", referencing, true, false, Event{Kind: KindRemoved, Path: "/src/_p.css"}, ActionRemovedPartial},
		{"removed common partial", referencing, true, false, Event{Kind: KindRemoved, Path: "/src/_c.css"}, ActionRemovedPartial},
		{"removed unreferenced partial ignored", referencing, true, false, Event{Kind: KindRemoved, Path: "/src/_x.css"}, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decide(tt.st, tt.built, tt.dedup, tt.ev))
		})
	}
}

func TestReferencedBy(t *testing.T) {
	st := stateWith(nil, map[string][]string{
		"/src/b.css": {"/src/_p.css"},
		"/src/a.css": {"/src/_p.css", "/src/_q.css"},
		"/src/c.css": {"/src/_q.css"},
	})

	assert.Equal(t, []string{"/src/a.css", "/src/b.css"}, referencedBy(st, "/src/_p.css"))
	assert.Nil(t, referencedBy(st, "/src/_missing.css"))
}
