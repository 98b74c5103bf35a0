package check

import (
	"fmt"

	"github.com/docsentry/docsentry/pkg/shared/files"
)

const (
	formatText  = "text"
	formatJSON  = "json"
	formatSarif = "sarif"
)

// validateCheckArgs checks the arguments of the check command.
func validateCheckArgs(opts *RunOptionsCheck) error {
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

	switch opts.Format {
	case formatText:
		if opts.OutputPath != "" {
			return fmt.Errorf("'output' flag requires --format json or sarif")
		}
	case formatJSON, formatSarif:
		if opts.OutputPath == "" {
			return fmt.Errorf("'output' flag must be specified for the %s format", opts.Format)
		}
	default:
		return fmt.Errorf("unsupported format: %s. Supported formats are: text, json, sarif", opts.Format)
	}

	if opts.TSConfigPath != "" {
		if err := files.ValidatePath(opts.TSConfigPath); err != nil {
			return fmt.Errorf("invalid 'tsconfig' flag: %w", err)
		}
	}

	opts.Extensions = files.NormalizeExtensions(opts.Extensions)
	return nil
}
