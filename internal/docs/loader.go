package docs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/docsentry/docsentry/pkg/shared/files"
)

// Loader walks a documentation tree and streams its documents.
type Loader struct {
	root       string
	extensions []string
	logger     hclog.Logger
}

// Result is one element of the document stream. Err is set when the file
// could not be read; the walk itself continues.
type Result struct {
	Doc Document
	Err error
}

// Skip records an entry the walk could not read. The run keeps going; the
// caller decides how to surface the gap.
type Skip struct {
	Path string
	Err  error
}

// NewLoader creates a Loader for the given root directory and extension
// filters (e.g. ".md", ".mdx").
func NewLoader(root string, extensions []string, logger hclog.Logger) *Loader {
	return &Loader{
		root:       root,
		extensions: files.NormalizeExtensions(extensions),
		logger:     logger,
	}
}

// Walk lists all matching files under the root in sorted order. Paths are
// relative to the root and slash-separated, so the set doubles as the
// resolution universe for the internal link rule. Entries that could not be
// read come back as skips so the run records them instead of losing them.
func (l *Loader) Walk() ([]string, []Skip, error) {
	if err := files.ValidateDirPath(l.root); err != nil {
		return nil, nil, fmt.Errorf("documentation root %q: %w", l.root, err)
	}

	var paths []string
	var skipped []Skip
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			skipped = append(skipped, Skip{Path: l.relPath(path), Err: err})
			if d != nil && d.IsDir() {
				l.logger.Warn("skipping unreadable directory", "path", path, "error", err)
				return filepath.SkipDir
			}
			l.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !l.matchesExtension(d.Name()) {
			return nil
		}
		paths = append(paths, l.relPath(path))
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk documentation root %q: %w", l.root, err)
	}

	sort.Strings(paths)
	return paths, skipped, nil
}

// relPath converts an absolute walk path to the run's relative slash form.
func (l *Loader) relPath(path string) string {
	rel, err := filepath.Rel(l.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Documents streams the given paths as loaded documents. The sequence is
// lazy, finite, and non-restartable: the channel is produced by a single
// goroutine and consumed exactly once per run. Cancelling the context stops
// the producer promptly.
func (l *Loader) Documents(ctx context.Context, paths []string) <-chan Result {
	out := make(chan Result)
	go func() {
		defer close(out)
		for _, rel := range paths {
			content, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(rel)))

			var res Result
			if err != nil {
				res = Result{Doc: Document{Path: rel}, Err: err}
			} else {
				res = Result{Doc: NewDocument(rel, string(content))}
			}

			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (l *Loader) matchesExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range l.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
