package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWalkFiltersAndSorts(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "guides/b.md", "# B")
	writeFixture(t, tmpDir, "guides/a.mdx", "# A")
	writeFixture(t, tmpDir, "assets/logo.png", "binary")
	writeFixture(t, tmpDir, "readme.MD", "# readme")

	loader := NewLoader(tmpDir, []string{".md", ".mdx"}, hclog.NewNullLogger())
	paths, skipped, err := loader.Walk()
	require.NoError(t, err)

	assert.Equal(t, []string{"guides/a.mdx", "guides/b.md", "readme.MD"}, paths)
	assert.Empty(t, skipped)
}

func TestWalkMissingRoot(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing"), []string{".md"}, hclog.NewNullLogger())

	_, _, err := loader.Walk()
	assert.Error(t, err)
}

func TestWalkRecordsUnreadableDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "a.md", "# a")
	writeFixture(t, tmpDir, "hidden/b.md", "# b")
	require.NoError(t, os.Chmod(filepath.Join(tmpDir, "hidden"), 0000))
	t.Cleanup(func() { os.Chmod(filepath.Join(tmpDir, "hidden"), 0755) })

	loader := NewLoader(tmpDir, []string{".md"}, hclog.NewNullLogger())
	paths, skipped, err := loader.Walk()
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md"}, paths)
	require.Len(t, skipped, 1)
	assert.Equal(t, "hidden", skipped[0].Path)
	assert.Error(t, skipped[0].Err)
}

func TestDocumentsStreamsContentAndHash(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "intro.md", "# Intro")

	loader := NewLoader(tmpDir, []string{".md"}, hclog.NewNullLogger())
	paths, _, err := loader.Walk()
	require.NoError(t, err)

	var results []Result
	for res := range loader.Documents(context.Background(), paths) {
		results = append(results, res)
	}

	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "intro.md", results[0].Doc.Path)
	assert.Equal(t, "# Intro", results[0].Doc.Content)
	assert.NotEmpty(t, results[0].Doc.Hash)
}

func TestDocumentsReportsUnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "secret.md", "# hidden")
	require.NoError(t, os.Chmod(filepath.Join(tmpDir, "secret.md"), 0000))

	loader := NewLoader(tmpDir, []string{".md"}, hclog.NewNullLogger())
	paths, _, err := loader.Walk()
	require.NoError(t, err)
	require.Len(t, paths, 1)

	var results []Result
	for res := range loader.Documents(context.Background(), paths) {
		results = append(results, res)
	}

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Equal(t, "secret.md", results[0].Doc.Path)
}

func TestDocumentsStopsOnCancel(t *testing.T) {
	tmpDir := t.TempDir()
	writeFixture(t, tmpDir, "a.md", "# a")
	writeFixture(t, tmpDir, "b.md", "# b")

	loader := NewLoader(tmpDir, []string{".md"}, hclog.NewNullLogger())
	paths, _, err := loader.Walk()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	stream := loader.Documents(ctx, paths)

	<-stream
	cancel()

	// The producer must close the channel after cancellation.
	for range stream {
	}
}
