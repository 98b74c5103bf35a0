package list

import (
	"fmt"

	"github.com/docsentry/docsentry/pkg/shared/files"
)

// validateListArgs checks the arguments of the list command.
func validateListArgs(opts *RunOptionsList) error {
	if opts.Root == "" {
		return fmt.Errorf("'root' flag must be specified")
	}
	if err := files.ValidateDirPath(opts.Root); err != nil {
		return fmt.Errorf("invalid 'root' flag: %w", err)
	}
	if len(opts.Extensions) == 0 {
		return fmt.Errorf("'ext' flag must name at least one extension")
	}

	opts.Extensions = files.NormalizeExtensions(opts.Extensions)
	return nil
}
