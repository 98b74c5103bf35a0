package watch

import (
	"fmt"

	"github.com/docsentry/docsentry/pkg/shared/files"
)

// validateWatchArgs checks the arguments of the watch command.
func validateWatchArgs(opts *RunOptionsWatch) error {
	if opts.Root == "" {
		return fmt.Errorf("'root' flag must be specified")
	}
	if err := files.ValidateDirPath(opts.Root); err != nil {
		return fmt.Errorf("invalid 'root' flag: %w", err)
	}
	if len(opts.Extensions) == 0 {
		return fmt.Errorf("'ext' flag must name at least one extension")
	}
	if opts.MaxParallel < 1 {
		return fmt.Errorf("'max-parallel' flag must be at least 1")
	}
	if opts.Debounce < 0 {
		return fmt.Errorf("'debounce' flag must not be negative")
	}

	if opts.TSConfigPath != "" {
		if err := files.ValidatePath(opts.TSConfigPath); err != nil {
			return fmt.Errorf("invalid 'tsconfig' flag: %w", err)
		}
	}

	opts.Extensions = files.NormalizeExtensions(opts.Extensions)
	return nil
}
