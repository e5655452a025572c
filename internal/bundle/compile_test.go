package bundle_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiltcss/quilt/internal/bundle"
	"github.com/quiltcss/quilt/internal/bundle/bundletest"
	"github.com/quiltcss/quilt/internal/compiler"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompileEntry_RecordsMarkedImports(t *testing.T) {
	src := t.TempDir()
	writeSource(t, src, "_p.css", "span{font-weight:bold}\n")
	entry := writeSource(t, src, "a.css",
		"@use \"!bundler/_p.css\";\n#a{color:red}\n")

	art, err := bundle.CompileEntry(bundletest.New(), src, entry)
	require.NoError(t, err)

	assert.Equal(t, entry, art.Entry)
	assert.Equal(t, []string{filepath.Join(src, "_p.css")}, art.Imports)
	assert.Equal(t, "#a{color:red}", art.CSS)
	assert.False(t, art.Failed)
}

func TestCompileEntry_DeduplicatesImports(t *testing.T) {
	src := t.TempDir()
	writeSource(t, src, "_p.css", "span{}\n")
	entry := writeSource(t, src, "a.css",
		"@use \"!bundler/_p.css\";\n@use \"!bundler/_p.css\";\n#a{}\n")

	art, err := bundle.CompileEntry(bundletest.New(), src, entry)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(src, "_p.css")}, art.Imports)
}

func TestCompileEntry_PreservesDirectiveOrder(t *testing.T) {
	src := t.TempDir()
	writeSource(t, src, "_p.css", "p{}\n")
	writeSource(t, src, "_q.css", "q{}\n")
	entry := writeSource(t, src, "a.css",
		"@use \"!bundler/_q.css\";\n@use \"!bundler/_p.css\";\nbody{}\n")

	art, err := bundle.CompileEntry(bundletest.New(), src, entry)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(src, "_q.css"),
		filepath.Join(src, "_p.css"),
	}, art.Imports)
}

func TestCompileEntry_UnmarkedImportInlined(t *testing.T) {
	src := t.TempDir()
	writeSource(t, src, "_inline.css", "i{}\n")
	entry := writeSource(t, src, "a.css",
		"@import \"_inline.css\";\nbody{}\n")

	art, err := bundle.CompileEntry(bundletest.New(), src, entry)
	require.NoError(t, err)
	assert.Empty(t, art.Imports)
	assert.Equal(t, "i{}body{}", art.CSS)
}

func TestCompileEntry_Failure(t *testing.T) {
	src := t.TempDir()
	entry := writeSource(t, src, "a.css", "body{}\n")

	fake := bundletest.New()
	fake.FailPaths[entry] = true

	art, err := bundle.CompileEntry(fake, src, entry)
	require.Error(t, err)

	var ce *compiler.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, entry, ce.Path)
	assert.NotEmpty(t, ce.FormattedMessage)
	assert.True(t, art.Failed)
}

func TestDiscoverEntries_SkipsPartialsAndOtherFiles(t *testing.T) {
	src := t.TempDir()
	a := writeSource(t, src, "a.css", "")
	b := writeSource(t, src, "nested/b.css", "")
	writeSource(t, src, "_p.css", "")
	writeSource(t, src, "nested/_q.css", "")
	writeSource(t, src, "notes.txt", "")
	writeSource(t, src, ".cache/c.css", "")

	entries, err := bundle.DiscoverEntries(src)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, entries)
}
