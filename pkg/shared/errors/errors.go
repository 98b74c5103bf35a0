package errors

import "fmt"

// Exit codes surfaced to the CI runner.
const (
	ExitOK          = 0
	ExitCheckFailed = 1
	ExitToolchain   = 2
)

// ToolchainError is the one fatal condition in the pipeline: the external
// type-checker cannot be invoked. Silently skipping checks would produce
// false confidence, so the whole run aborts with a distinct exit code.
type ToolchainError struct {
	Command string
	Err     error
}

func (e *ToolchainError) Error() string {
	return fmt.Sprintf("toolchain %q is not available: %v", e.Command, e.Err)
}

func (e *ToolchainError) Unwrap() error {
	return e.Err
}

// ExitCode implements the exit code contract for the command layer.
func (e *ToolchainError) ExitCode() int {
	return ExitToolchain
}

// NewToolchainError wraps the probe failure for the configured command.
func NewToolchainError(command string, err error) *ToolchainError {
	return &ToolchainError{Command: command, Err: err}
}

// CheckFailedError signals that the run completed but the report did not
// pass. It carries the counts for the command-level diagnostic.
type CheckFailedError struct {
	Errors   int
	Warnings int
}

func (e *CheckFailedError) Error() string {
	return fmt.Sprintf("documentation checks failed: %d errors, %d warnings", e.Errors, e.Warnings)
}

// ExitCode implements the exit code contract for the command layer.
func (e *CheckFailedError) ExitCode() int {
	return ExitCheckFailed
}

// NewCheckFailedError creates a CheckFailedError from aggregate counts.
func NewCheckFailedError(errs, warnings int) *CheckFailedError {
	return &CheckFailedError{Errors: errs, Warnings: warnings}
}
