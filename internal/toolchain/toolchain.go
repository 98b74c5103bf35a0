package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/docsentry/docsentry/pkg/shared/config"
	sharederrors "github.com/docsentry/docsentry/pkg/shared/errors"
)

// Diagnostic is one compiler message mapped to snippet coordinates.
// Line 1 is the first line of the snippet itself; the ambient shim is
// compiled as a separate file and never shifts snippet lines.
type Diagnostic struct {
	Line    int
	Column  int
	Code    string
	Message string
}

// ErrTimeout is returned when a single snippet exceeds the per-block
// toolchain budget.
var ErrTimeout = errors.New("toolchain invocation timed out")

// Toolchain type-checks one snippet in isolation.
type Toolchain interface {
	// Probe verifies the toolchain can be invoked at all. A failing probe
	// is the single fatal condition of a run.
	Probe(ctx context.Context) error
	// Check compiles the snippet and returns its diagnostics. An error is
	// an invocation failure, not a snippet problem.
	Check(ctx context.Context, snippet string) ([]Diagnostic, error)
}

const snippetFileName = "snippet.ts"

// TSC invokes the TypeScript compiler as a subprocess per snippet.
type TSC struct {
	command   string
	extraArgs []string
	shim      Shim
	timeout   time.Duration
	logger    hclog.Logger
}

// NewTSC builds a TSC toolchain from the run configuration. Extra compiler
// arguments come from the config file and the optional tsconfig
// passthrough.
func NewTSC(cfg *config.Config, extraArgs []string, logger hclog.Logger) *TSC {
	args := append([]string{}, cfg.Checker.ToolchainArgs...)
	args = append(args, extraArgs...)
	return &TSC{
		command:   cfg.ToolchainCommand(),
		extraArgs: args,
		shim:      DefaultShim,
		timeout:   cfg.BlockTimeout(),
		logger:    logger,
	}
}

// Probe runs the compiler with --version.
func (t *TSC) Probe(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, t.command, "--version")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return sharederrors.NewToolchainError(t.command, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out))))
	}
	t.logger.Debug("toolchain probe succeeded", "command", t.command, "version", strings.TrimSpace(string(out)))
	return nil
}

// Check writes the snippet next to the ambient shim in a scratch directory
// and runs the compiler with --noEmit. The scratch directory is removed
// before returning.
func (t *TSC) Check(ctx context.Context, snippet string) ([]Diagnostic, error) {
	dir, err := os.MkdirTemp("", "docsentry-snippet-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	shimFile := filepath.Join(dir, t.shim.FileName)
	if err := os.WriteFile(shimFile, []byte(t.shim.Source), 0644); err != nil {
		return nil, fmt.Errorf("failed to write ambient shim: %w", err)
	}
	snippetFile := filepath.Join(dir, snippetFileName)
	if err := os.WriteFile(snippetFile, []byte(snippet), 0644); err != nil {
		return nil, fmt.Errorf("failed to write snippet: %w", err)
	}

	runCtx := ctx
	if t.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	args := []string{"--noEmit", "--pretty", "false", "--skipLibCheck"}
	args = append(args, t.extraArgs...)
	args = append(args, t.shim.FileName, snippetFileName)

	cmd := exec.CommandContext(runCtx, t.command, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()

	if runCtx.Err() == context.DeadlineExceeded {
		return nil, ErrTimeout
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// the binary vanished mid-run or could not be started
			return nil, sharederrors.NewToolchainError(t.command, err)
		}
		// non-zero exit with diagnostics on stdout is the normal failure
		// shape for tsc. Without a single file-scoped diagnostic the
		// compiler rejected the invocation (e.g. a bad --target), so
		// nothing was checked and an empty result would be a false pass.
		if !HasFileDiagnostics(string(out)) {
			return nil, sharederrors.NewToolchainError(t.command,
				fmt.Errorf("compiler rejected the invocation: %s", firstOutputLine(out)))
		}
	}

	return ParseDiagnostics(string(out), snippetFileName), nil
}

func firstOutputLine(out []byte) string {
	text := strings.TrimSpace(string(out))
	if text == "" {
		return "(no output)"
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimRight(text, "\r")
}
