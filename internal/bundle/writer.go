package bundle

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quiltcss/quilt/internal/compiler"
)

// Writer emits page bundles and the shared stylesheet. Output mirrors
// the source tree under OutDir, with the extension rewritten to the
// compiled stylesheet extension; the shared file lives at SharedPath.
//
// Writes go through os.WriteFile, so every output is fully flushed and
// closed before a method returns. The coordinator's serial event
// processing means no two writes ever race on the same path.
type Writer struct {
	compiler   compiler.Compiler
	sourceDir  string
	outDir     string
	sharedPath string
	logger     *slog.Logger
}

// NewWriter returns a writer over the given compiler and layout. A nil
// logger discards.
func NewWriter(c compiler.Compiler, sourceDir, outDir, sharedPath string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{
		compiler:   c,
		sourceDir:  sourceDir,
		outDir:     outDir,
		sharedPath: sharedPath,
		logger:     logger,
	}
}

// OutputPath returns the page output path for an entry source path.
func (w *Writer) OutputPath(entry string) string {
	rel, err := filepath.Rel(w.sourceDir, entry)
	if err != nil {
		rel = filepath.Base(entry)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + Ext
	return filepath.Join(w.outDir, rel)
}

// Bundle writes the page output for one artifact: every import the
// artifact does not share with common, independently recompiled in
// directive order, followed by the artifact's own compiled body.
//
// Imports are recompiled individually rather than inlined during the
// entry's compile so that a common import can be extracted into the
// shared file instead of being duplicated into every page.
func (w *Writer) Bundle(art *Artifact, common []string) error {
	own := Difference(art.Imports, common)

	var buf strings.Builder
	for _, imp := range own {
		res, err := w.compiler.Compile(imp, nil)
		if err != nil {
			return err
		}
		w.logger.Debug("compiled import", "path", imp)
		buf.WriteString(res.CSS)
	}
	buf.WriteString(art.CSS)

	out := w.OutputPath(art.Entry)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	w.logger.Debug("wrote bundle", "entry", art.Entry, "out", out)
	return nil
}

// WriteShared writes the shared stylesheet: each common import,
// independently recompiled in set order, concatenated into the single
// configured shared output file.
func (w *Writer) WriteShared(common []string) error {
	var buf strings.Builder
	for _, imp := range common {
		res, err := w.compiler.Compile(imp, nil)
		if err != nil {
			return err
		}
		w.logger.Debug("compiled import", "path", imp)
		buf.WriteString(res.CSS)
	}

	if err := os.MkdirAll(filepath.Dir(w.sharedPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(w.sharedPath, []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write shared stylesheet: %w", err)
	}
	w.logger.Debug("wrote shared stylesheet", "out", w.sharedPath, "imports", len(common))
	return nil
}

// RemoveOutput deletes the page output for an entry. A missing output
// file is not an error.
func (w *Writer) RemoveOutput(entry string) error {
	out := w.OutputPath(entry)
	if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove output: %w", err)
	}
	w.logger.Debug("removed output", "entry", entry, "out", out)
	return nil
}
