package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event channel closed")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestSource_ReadyThenSerializedEvents(t *testing.T) {
	root := t.TempDir()
	source, err := NewSource(root, nil)
	require.NoError(t, err)
	defer func() { _ = source.Close() }()

	events := source.Events()
	assert.Equal(t, KindReady, nextEvent(t, events).Kind)

	path := filepath.Join(root, "a.css")
	require.NoError(t, os.WriteFile(path, []byte("body{}"), 0o644))

	ev := nextEvent(t, events)
	assert.Equal(t, KindAdded, ev.Kind)
	assert.Equal(t, path, ev.Path)

	// Every specific event is followed by the generic one for the
	// same notification.
	ev = nextEvent(t, events)
	assert.Equal(t, KindAny, ev.Kind)
	assert.Equal(t, path, ev.Path)
}

func TestSource_IgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()
	source, err := NewSource(root, nil)
	require.NoError(t, err)
	defer func() { _ = source.Close() }()

	events := source.Events()
	require.Equal(t, KindReady, nextEvent(t, events).Kind)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))
	cssPath := filepath.Join(root, "b.css")
	require.NoError(t, os.WriteFile(cssPath, []byte("body{}"), 0o644))

	// The .txt write produces nothing; the first event seen is the
	// stylesheet's.
	ev := nextEvent(t, events)
	assert.Equal(t, KindAdded, ev.Kind)
	assert.Equal(t, cssPath, ev.Path)
}

func TestSource_RemoveEvent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.css")
	require.NoError(t, os.WriteFile(path, []byte("body{}"), 0o644))

	source, err := NewSource(root, nil)
	require.NoError(t, err)
	defer func() { _ = source.Close() }()

	events := source.Events()
	require.Equal(t, KindReady, nextEvent(t, events).Kind)

	require.NoError(t, os.Remove(path))

	// Skip any write/chmod noise preceding the removal.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Kind == KindRemoved {
				assert.Equal(t, path, ev.Path)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for removal")
		}
	}
}
