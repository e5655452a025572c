package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/quiltcss/quilt/internal/bundle"
	"github.com/quiltcss/quilt/internal/compiler"
	"github.com/quiltcss/quilt/internal/notify"
)

// Coordinator owns the build state and decides, for every filesystem
// event, the smallest correct set of work to redo.
type Coordinator struct {
	compiler  compiler.Compiler
	writer    *bundle.Writer
	sourceDir string
	logger    *slog.Logger
	notifier  *notify.Notifier

	state *bundle.State

	// built is set once the initial build has been attempted; events
	// arriving earlier are a bookkeeping inconsistency.
	built bool
	// dedup suppresses exactly one generic notification: the one the
	// watcher emits for the same edit whose handler just failed. It is
	// instance state so independent coordinators cannot interfere.
	dedup bool
}

// Config holds coordinator dependencies.
type Config struct {
	Compiler  compiler.Compiler
	Writer    *bundle.Writer
	SourceDir string
	// Logger is optional; nil discards.
	Logger *slog.Logger
	// Notifier, when set, is broadcast after every successful cycle.
	Notifier *notify.Notifier
}

// New creates a coordinator with a fresh build state.
func New(cfg Config) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coordinator{
		compiler:  cfg.Compiler,
		writer:    cfg.Writer,
		sourceDir: cfg.SourceDir,
		logger:    logger,
		notifier:  cfg.Notifier,
		state:     bundle.NewState(),
	}
}

// State exposes the build state for inspection. Callers must not
// mutate it; a one-shot build reads ErrorFlag from here.
func (c *Coordinator) State() *bundle.State {
	return c.state
}

// Build runs a single full build. The returned error reflects the
// first compile or write failure; ErrorFlag is set accordingly.
func (c *Coordinator) Build() error {
	c.built = true
	return c.fullBuild()
}

// Run consumes events serially until the context is cancelled or the
// event channel closes. Each event is processed end to end, including
// all output I/O, before the next is received.
func (c *Coordinator) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			c.Handle(ev)
		}
	}
}

// Handle processes one event to completion. Failures are folded into
// the build state and logged; they never propagate.
func (c *Coordinator) Handle(ev Event) {
	switch decide(c.state, c.built, c.dedup, ev) {
	case ActionNone:
	case ActionWarnNotReady:
		c.logger.Warn("event before initial build, dropped", "event", ev.Kind.String(), "path", ev.Path)
	case ActionFullBuild:
		c.built = true
		if err := c.fullBuild(); err != nil {
			c.logger.Error("initial build failed", "err", err)
		}
	case ActionAbsorb:
		c.dedup = false
	case ActionRecover:
		c.state.ErrorFlag = false
		c.logger.Info("recovering with full rebuild")
		if err := c.fullBuild(); err != nil {
			c.logger.Error("recovery build failed", "err", err)
		}
	case ActionWriteShared:
		c.handleChangedCommon(ev.Path)
	case ActionBundleImporters:
		c.handleChangedPartial(ev.Path)
	case ActionChangedEntry:
		c.handleChangedEntry(ev.Path)
	case ActionAddedEntry:
		c.handleAddedEntry(ev.Path)
	case ActionRemovedPartial:
		c.handleRemovedPartial(ev.Path)
	case ActionRemovedEntry:
		c.handleRemovedEntry(ev.Path)
	}
}

// fullBuild recompiles every entry under the source root, recomputes
// the common set, and rewrites all outputs. Compilation happens before
// any write, so a failing entry aborts the cycle without touching the
// outputs of the previous successful one.
func (c *Coordinator) fullBuild() error {
	entries, err := bundle.DiscoverEntries(c.sourceDir)
	if err != nil {
		c.state.ErrorFlag = true
		return fmt.Errorf("failed to scan source root: %w", err)
	}

	artifacts := make(map[string]*bundle.Artifact, len(entries))
	for _, entry := range entries {
		art, err := bundle.CompileEntry(c.compiler, c.sourceDir, entry)
		if err != nil {
			c.failCompile(err)
			return err
		}
		c.logger.Debug("compiled entry", "path", entry)
		artifacts[entry] = art
	}

	c.state.Artifacts = artifacts
	c.state.Common = bundle.IdentifyCommon(artifacts)

	for _, entry := range c.state.SortedEntries() {
		if err := c.writer.Bundle(c.state.Artifacts[entry], c.state.Common); err != nil {
			c.failCompile(err)
			return err
		}
	}
	if err := c.writer.WriteShared(c.state.Common); err != nil {
		c.failCompile(err)
		return err
	}

	c.logger.Info("full build complete", "entries", len(entries), "common", len(c.state.Common))
	c.broadcast()
	return nil
}

// handleChangedCommon rewrites only the shared stylesheet after a
// common partial was edited; no page output depends on its contents.
func (c *Coordinator) handleChangedCommon(path string) {
	if err := c.writer.WriteShared(c.state.Common); err != nil {
		c.failEvent(err)
		return
	}
	c.logger.Info("shared stylesheet rewritten", "changed", path)
	c.broadcast()
}

// handleChangedPartial re-bundles exactly the artifacts that import a
// changed non-common partial; the common set is untouched.
func (c *Coordinator) handleChangedPartial(path string) {
	for _, entry := range referencedBy(c.state, path) {
		if err := c.writer.Bundle(c.state.Artifacts[entry], c.state.Common); err != nil {
			c.failEvent(err)
			return
		}
	}
	c.logger.Info("rebundled importers", "changed", path)
	c.broadcast()
}

// handleChangedEntry recompiles one edited entry and applies the
// minimal follow-up: a lone re-bundle when the import set is stable, a
// full rebuild when commonality may have shifted.
func (c *Coordinator) handleChangedEntry(path string) {
	art, err := bundle.CompileEntry(c.compiler, c.sourceDir, path)
	if err != nil {
		// Keep the previous artifact; the state still reflects the
		// last output actually on disk.
		c.failEvent(err)
		return
	}

	old, ok := c.state.Artifacts[path]
	if !ok {
		c.logger.Warn("no artifact for changed entry, dropped", "path", path)
		return
	}
	c.state.Artifacts[path] = art

	if bundle.SetEqual(art.Imports, old.Imports) {
		c.bundleOne(art)
		return
	}

	removed := bundle.Difference(old.Imports, art.Imports)
	if bundle.Intersects(removed, c.state.Common) {
		// A common dependency dropped out of one page; only a global
		// recomputation can restore the intersection invariant.
		c.rebuildAll()
		return
	}

	added := bundle.Difference(art.Imports, old.Imports)
	if len(added) > 0 {
		next := bundle.IdentifyCommon(c.state.Artifacts)
		if !bundle.SetEqual(next, c.state.Common) {
			c.rebuildAll()
			return
		}
	}
	c.bundleOne(art)
}

// handleAddedEntry compiles a freshly created entry. Adding an entry
// can only shrink or preserve the intersection: if any current common
// import is missing from the new file, commonality must shrink and is
// recomputed globally; otherwise the new page is bundled alone.
func (c *Coordinator) handleAddedEntry(path string) {
	art, err := bundle.CompileEntry(c.compiler, c.sourceDir, path)
	if err != nil {
		c.failEvent(err)
		return
	}
	c.state.Artifacts[path] = art

	if !bundle.IsSubset(c.state.Common, art.Imports) {
		c.rebuildAll()
		return
	}
	c.bundleOne(art)
}

// handleRemovedPartial reports the deletion of a partial that at least
// one entry still imports. This cannot be resolved automatically: the
// state is flagged, outputs stay as they are, and the next unrelated
// change triggers recovery through the generic event path.
func (c *Coordinator) handleRemovedPartial(path string) {
	affected := referencedBy(c.state, path)

	if bundle.Contains(c.state.Common, path) {
		// Explicit invalidation of the common set; restored only by
		// the forced full rebuild on recovery.
		c.state.Common = bundle.Difference(c.state.Common, []string{path})
		c.state.ErrorFlag = true
		c.dedup = true
		c.logger.Error("shared dependency removed", "path", path)
		return
	}

	c.state.ErrorFlag = true
	c.dedup = true
	c.logger.Error("referenced partial removed", "path", path, "affected", affected)
}

// handleRemovedEntry drops a deleted entry: its output file goes, its
// artifact goes, and if the remaining collection's intersection
// changed, a full rebuild restores every output. The rebuild is
// awaited here, preserving one-event-at-a-time processing.
func (c *Coordinator) handleRemovedEntry(path string) {
	if _, ok := c.state.Artifacts[path]; !ok {
		c.logger.Warn("no artifact for removed entry, dropped", "path", path)
		return
	}

	if err := c.writer.RemoveOutput(path); err != nil {
		c.failEvent(err)
		return
	}
	delete(c.state.Artifacts, path)

	next := bundle.IdentifyCommon(c.state.Artifacts)
	if !bundle.SetEqual(next, c.state.Common) {
		c.rebuildAll()
		return
	}
	c.logger.Info("entry removed", "path", path)
	c.broadcast()
}

// bundleOne rewrites a single page output against the current common
// set.
func (c *Coordinator) bundleOne(art *bundle.Artifact) {
	if err := c.writer.Bundle(art, c.state.Common); err != nil {
		c.failEvent(err)
		return
	}
	c.logger.Info("rebundled entry", "path", art.Entry)
	c.broadcast()
}

// rebuildAll runs a full rebuild from an event handler; failures are
// folded into the state like any other event failure.
func (c *Coordinator) rebuildAll() {
	if err := c.fullBuild(); err != nil {
		// fullBuild already set the error flag; the generic event for
		// this same edit must still be absorbed.
		c.dedup = true
	}
}

// failCompile records a failure outside per-event handling (full
// builds): the error flag is set without arming the dedup flag.
func (c *Coordinator) failCompile(err error) {
	c.state.ErrorFlag = true
	c.logFailure(err)
}

// failEvent records a failure while handling a specific event: the
// watcher will still deliver its own generic notification for this
// edit, so the dedup flag is armed to absorb it.
func (c *Coordinator) failEvent(err error) {
	c.state.ErrorFlag = true
	c.dedup = true
	c.logFailure(err)
}

func (c *Coordinator) logFailure(err error) {
	var ce *compiler.CompileError
	if errors.As(err, &ce) {
		c.logger.Error("compile failed", "path", ce.Path, "diagnostic", ce.FormattedMessage)
		return
	}
	c.logger.Error("build cycle failed", "err", err)
}

func (c *Coordinator) broadcast() {
	if c.notifier != nil {
		c.notifier.Broadcast()
	}
}
