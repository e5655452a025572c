package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want []string
	}{
		{"disjoint", []string{"x", "y"}, []string{"z"}, []string{"x", "y"}},
		{"overlap keeps order", []string{"x", "y", "z"}, []string{"y"}, []string{"x", "z"}},
		{"all removed", []string{"x"}, []string{"x"}, nil},
		{"empty a", nil, []string{"x"}, nil},
		{"empty b", []string{"x"}, nil, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Difference(tt.a, tt.b))
		})
	}
}

func TestIntersects(t *testing.T) {
	assert.True(t, Intersects([]string{"x", "y"}, []string{"y", "z"}))
	assert.False(t, Intersects([]string{"x"}, []string{"z"}))
	assert.False(t, Intersects(nil, []string{"z"}))
	assert.False(t, Intersects([]string{"x"}, nil))
}

func TestIsSubset(t *testing.T) {
	assert.True(t, IsSubset(nil, []string{"x"}))
	assert.True(t, IsSubset([]string{"x"}, []string{"x", "y"}))
	assert.False(t, IsSubset([]string{"x", "z"}, []string{"x", "y"}))
	assert.True(t, IsSubset(nil, nil))
}

func TestSetEqual(t *testing.T) {
	assert.True(t, SetEqual([]string{"x", "y"}, []string{"y", "x"}))
	assert.True(t, SetEqual(nil, nil))
	assert.False(t, SetEqual([]string{"x"}, []string{"x", "y"}))
	assert.False(t, SetEqual([]string{"x", "y"}, []string{"x"}))
}

func TestIsPartial(t *testing.T) {
	assert.True(t, IsPartial("/src/_p.css"))
	assert.True(t, IsPartial("/src/nested/_base.css"))
	assert.False(t, IsPartial("/src/a.css"))
	assert.False(t, IsPartial("/src/_dir/a.css"))
}
