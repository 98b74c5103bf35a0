package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, root string, fired chan struct{}) {
	t.Helper()

	w, err := New(root, []string{".md"}, 50*time.Millisecond, func(context.Context) {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, hclog.NewNullLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Run(ctx)

	// give the watch registration a moment to settle
	time.Sleep(100 * time.Millisecond)
}

func waitFired(t *testing.T, fired chan struct{}) {
	t.Helper()
	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("change was not detected")
	}
}

func TestWatcherTriggersOnDocumentWrite(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("# a\n"), 0644))

	fired := make(chan struct{}, 1)
	startWatcher(t, root, fired)

	require.NoError(t, os.WriteFile(path, []byte("# changed\n"), 0644))
	waitFired(t, fired)
}

func TestWatcherPicksUpNewSubdirectory(t *testing.T) {
	root := t.TempDir()

	fired := make(chan struct{}, 1)
	startWatcher(t, root, fired)

	sub := filepath.Join(root, "guides")
	require.NoError(t, os.Mkdir(sub, 0755))
	waitFired(t, fired)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.md"), []byte("# b\n"), 0644))
	waitFired(t, fired)
}

func TestWatcherMissingRoot(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "absent"), []string{".md"}, 0, func(context.Context) {}, hclog.NewNullLogger())
	require.NoError(t, err)

	err = w.Run(context.Background())
	assert.Error(t, err)
}
