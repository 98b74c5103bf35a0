package fetch

import (
	"fmt"

	"github.com/docsentry/docsentry/internal/fetcher"
)

// validateFetchArgs checks the arguments of the fetch command.
func validateFetchArgs(opts *fetcher.Options) error {
	if opts.CloneURL == "" {
		return fmt.Errorf("a clone URL must be specified")
	}

	switch opts.AuthType {
	case "http", "ssh-agent":
	case "ssh-key":
		if opts.SSHKeyPath == "" {
			return fmt.Errorf("'ssh-key' flag must be specified for ssh-key auth")
		}
	default:
		return fmt.Errorf("unsupported auth type: %s. Supported types are: http, ssh-key, ssh-agent", opts.AuthType)
	}

	return nil
}
