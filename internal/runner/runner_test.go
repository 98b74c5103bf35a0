package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsentry/docsentry/internal/findings"
	"github.com/docsentry/docsentry/internal/report"
	"github.com/docsentry/docsentry/internal/toolchain"
	"github.com/docsentry/docsentry/pkg/shared/config"
	sharederrors "github.com/docsentry/docsentry/pkg/shared/errors"
)

// stubToolchain answers with canned diagnostics for snippets containing a
// marker string.
type stubToolchain struct {
	probeErr error
}

func (s *stubToolchain) Probe(context.Context) error {
	return s.probeErr
}

func (s *stubToolchain) Check(_ context.Context, snippet string) ([]toolchain.Diagnostic, error) {
	if strings.Contains(snippet, "BAD") {
		return []toolchain.Diagnostic{{Line: 1, Column: 1, Code: "TS2322", Message: "canned type error"}}, nil
	}
	return nil, nil
}

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newTestRunner(root string, maxParallel int) *Runner {
	opts := Options{
		Root:        root,
		Extensions:  []string{".md", ".mdx"},
		Languages:   []string{"typescript", "ts"},
		MaxParallel: maxParallel,
	}
	return New(&config.Config{}, opts, &stubToolchain{}, nil, hclog.NewNullLogger())
}

func TestRunCleanTree(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"intro.md":        "# Intro\n\n```ts\nconst x: number = 1;\n```\n",
		"guides/setup.md": "See [intro](../intro.md).\n",
	})

	rep, err := newTestRunner(root, 2).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, rep.Passed)
	assert.Empty(t, rep.Findings)
	assert.Equal(t, 2, rep.Documents)
	assert.Equal(t, "0 errors, 0 warnings across 2 documents", rep.Summary())
}

func TestRunCollectsFindingsAcrossDocuments(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"a.md": "```ts\nBAD\n```\n",
		"b.md": "[gone](./missing.md)\n",
		"c.md": "```ts\nconst ok = 1;\n```\n",
	})

	rep, err := newTestRunner(root, 4).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, rep.Passed)
	assert.Equal(t, 2, rep.Errors)
	assert.Equal(t, 3, rep.Documents)

	// no short-circuit: both problems reported in one pass
	rules := make(map[findings.RuleID]int)
	for _, f := range rep.Findings {
		rules[f.RuleID]++
	}
	assert.Equal(t, 1, rules[findings.RuleCompileError])
	assert.Equal(t, 1, rules[findings.RuleBrokenInternalLink])
}

func TestRunRecordsUnreadableDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := writeDocs(t, map[string]string{
		"a.md":        "# a\n",
		"hidden/b.md": "# b\n",
	})
	require.NoError(t, os.Chmod(filepath.Join(root, "hidden"), 0000))
	t.Cleanup(func() { os.Chmod(filepath.Join(root, "hidden"), 0755) })

	rep, err := newTestRunner(root, 1).Run(context.Background())
	require.NoError(t, err)

	// the skipped directory shows up in the report instead of vanishing
	assert.Equal(t, 1, rep.Documents)
	assert.Equal(t, 1, rep.Warnings)
	require.Len(t, rep.Findings, 1)
	f := rep.Findings[0]
	assert.Equal(t, findings.RuleCompileError, f.RuleID)
	assert.Equal(t, findings.SeverityWarning, f.Severity)
	assert.Equal(t, "hidden", f.FilePath)
	assert.Contains(t, f.Message, "could not read")
}

func TestRunToolchainProbeFailureIsFatal(t *testing.T) {
	root := writeDocs(t, map[string]string{"a.md": "# a\n"})

	opts := Options{Root: root, Extensions: []string{".md"}, Languages: []string{"ts"}, MaxParallel: 1}
	tc := &stubToolchain{probeErr: sharederrors.NewToolchainError("tsc", os.ErrNotExist)}
	r := New(&config.Config{}, opts, tc, nil, hclog.NewNullLogger())

	_, err := r.Run(context.Background())
	var tErr *sharederrors.ToolchainError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, sharederrors.ExitToolchain, tErr.ExitCode())
}

func TestRunMissingRoot(t *testing.T) {
	r := newTestRunner(filepath.Join(t.TempDir(), "absent"), 1)
	_, err := r.Run(context.Background())
	assert.Error(t, err)
}

func TestRunIsIdempotent(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"a.md": "```ts\nBAD\n```\n\n[gone](./missing.md)\n",
		"b.md": "```ts\nconst x = await f();\n```\n",
	})

	render := func(rep *report.Report) string {
		var buf bytes.Buffer
		require.NoError(t, report.WriteText(&buf, rep))
		return buf.String()
	}

	r := newTestRunner(root, 4)
	first, err := r.Run(context.Background())
	require.NoError(t, err)
	second, err := newTestRunner(root, 1).Run(context.Background())
	require.NoError(t, err)

	// byte-identical reports regardless of worker count
	assert.Equal(t, render(first), render(second))
}

func TestRunCancelledContext(t *testing.T) {
	root := writeDocs(t, map[string]string{"a.md": "# a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner(root, 2).Run(ctx)
	assert.Error(t, err)
}
