package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func art(entry string, imports ...string) *Artifact {
	return &Artifact{Entry: entry, Imports: imports}
}

func TestIdentifyCommon_Empty(t *testing.T) {
	assert.Empty(t, IdentifyCommon(nil))
	assert.Empty(t, IdentifyCommon(map[string]*Artifact{}))
}

func TestIdentifyCommon_SingleArtifact(t *testing.T) {
	artifacts := map[string]*Artifact{
		"/src/a.css": art("/src/a.css", "/src/_p.css", "/src/_q.css"),
	}
	common := IdentifyCommon(artifacts)
	assert.Equal(t, []string{"/src/_p.css", "/src/_q.css"}, common)
}

func TestIdentifyCommon_Intersection(t *testing.T) {
	tests := []struct {
		name      string
		artifacts map[string]*Artifact
		want      []string
	}{
		{
			name: "shared by all",
			artifacts: map[string]*Artifact{
				"/src/a.css": art("/src/a.css", "/src/_p.css", "/src/_a.css"),
				"/src/b.css": art("/src/b.css", "/src/_b.css", "/src/_p.css"),
				"/src/c.css": art("/src/c.css", "/src/_p.css"),
			},
			want: []string{"/src/_p.css"},
		},
		{
			name: "nothing shared",
			artifacts: map[string]*Artifact{
				"/src/a.css": art("/src/a.css", "/src/_a.css"),
				"/src/b.css": art("/src/b.css", "/src/_b.css"),
			},
			want: nil,
		},
		{
			name: "one artifact has no imports",
			artifacts: map[string]*Artifact{
				"/src/a.css": art("/src/a.css", "/src/_p.css"),
				"/src/b.css": art("/src/b.css"),
			},
			want: nil,
		},
		{
			name: "multiple shared, candidate order kept",
			artifacts: map[string]*Artifact{
				"/src/a.css": art("/src/a.css", "/src/_p.css", "/src/_q.css"),
				"/src/b.css": art("/src/b.css", "/src/_q.css", "/src/_p.css", "/src/_b.css"),
			},
			want: []string{"/src/_p.css", "/src/_q.css"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyCommon(tt.artifacts)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

// Map iteration order must not affect the result: repeated runs over
// the same collection always return the same set.
func TestIdentifyCommon_OrderIndependentAndIdempotent(t *testing.T) {
	artifacts := map[string]*Artifact{
		"/src/a.css": art("/src/a.css", "/src/_x.css", "/src/_y.css", "/src/_z.css"),
		"/src/b.css": art("/src/b.css", "/src/_z.css", "/src/_x.css"),
		"/src/c.css": art("/src/c.css", "/src/_x.css", "/src/_z.css", "/src/_c.css"),
	}

	first := IdentifyCommon(artifacts)
	require.ElementsMatch(t, []string{"/src/_x.css", "/src/_z.css"}, first)

	for i := 0; i < 20; i++ {
		assert.ElementsMatch(t, first, IdentifyCommon(artifacts))
	}
}

// Ties in minimum import count may pick either candidate; the result is
// the same set regardless.
func TestIdentifyCommon_TiesInMinimum(t *testing.T) {
	artifacts := map[string]*Artifact{
		"/src/a.css": art("/src/a.css", "/src/_p.css"),
		"/src/b.css": art("/src/b.css", "/src/_p.css"),
	}
	assert.ElementsMatch(t, []string{"/src/_p.css"}, IdentifyCommon(artifacts))
}
