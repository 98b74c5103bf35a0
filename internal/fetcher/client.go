package fetcher

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/hashicorp/go-hclog"

	crssh "golang.org/x/crypto/ssh"

	"github.com/docsentry/docsentry/pkg/shared/config"
	"github.com/docsentry/docsentry/pkg/shared/files"
)

// Options describe one repository fetch.
type Options struct {
	CloneURL       string
	Branch         string
	TargetFolder   string
	AuthType       string
	SSHKeyPath     string
	SSHKeyPassword string
	Username       string
	Token          string
}

// Client fetches documentation repositories for offline validation.
type Client struct {
	logger       hclog.Logger
	auth         transport.AuthMethod
	timeout      time.Duration
	globalConfig *config.Config
}

// Authenticator defines an interface for different authentication methods.
type Authenticator interface {
	SetupAuth(opts *Options, logger hclog.Logger) (transport.AuthMethod, error)
	ValidateOptions(opts *Options) error
}

// SSHKeyAuthenticator provides SSH key-based authentication.
type SSHKeyAuthenticator struct{}

// SSHAgentAuthenticator provides SSH agent-based authentication.
type SSHAgentAuthenticator struct{}

// HTTPAuthenticator provides HTTP basic authentication. Anonymous access is
// allowed for public documentation repositories.
type HTTPAuthenticator struct{}

// SetupAuth configures SSH key authentication.
func (s *SSHKeyAuthenticator) SetupAuth(opts *Options, logger hclog.Logger) (transport.AuthMethod, error) {
	logger.Debug("setting up SSH key authentication")

	sshKeyPath, err := files.ExpandPath(opts.SSHKeyPath)
	if err != nil {
		logger.Error("failed to expand SSH key path", "path", opts.SSHKeyPath, "error", err)
		return nil, err
	}

	auth, err := ssh.NewPublicKeysFromFile("git", sshKeyPath, opts.SSHKeyPassword)
	if err != nil {
		logger.Error("failed to set up SSH key authentication", "error", err.Error())
		return nil, err
	}

	auth.HostKeyCallbackHelper = ssh.HostKeyCallbackHelper{
		HostKeyCallback: crssh.InsecureIgnoreHostKey(), // TODO: support known_hosts verification
	}

	return auth, nil
}

// ValidateOptions validates the options for SSHKeyAuthenticator.
func (s *SSHKeyAuthenticator) ValidateOptions(opts *Options) error {
	if opts.SSHKeyPath == "" {
		return fmt.Errorf("ssh-key auth requires an SSH key path")
	}
	return nil
}

// SetupAuth configures SSH agent authentication.
func (s *SSHAgentAuthenticator) SetupAuth(opts *Options, logger hclog.Logger) (transport.AuthMethod, error) {
	logger.Debug("setting up SSH agent authentication")

	auth, err := ssh.NewSSHAgentAuth("git")
	if err != nil {
		logger.Error("failed to set up SSH agent authentication", "error", err)
		return nil, err
	}

	auth.HostKeyCallbackHelper = ssh.HostKeyCallbackHelper{
		HostKeyCallback: crssh.InsecureIgnoreHostKey(), // TODO: support known_hosts verification
	}

	return auth, nil
}

// ValidateOptions validates the options for SSHAgentAuthenticator.
func (s *SSHAgentAuthenticator) ValidateOptions(opts *Options) error {
	return nil
}

// SetupAuth configures HTTP basic authentication. With no credentials the
// clone proceeds anonymously.
func (h *HTTPAuthenticator) SetupAuth(opts *Options, logger hclog.Logger) (transport.AuthMethod, error) {
	logger.Debug("setting up HTTP authentication")

	if opts.Username == "" && opts.Token == "" {
		return nil, nil
	}
	return &http.BasicAuth{
		Username: opts.Username,
		Password: opts.Token,
	}, nil
}

// ValidateOptions validates the options for HTTPAuthenticator.
func (h *HTTPAuthenticator) ValidateOptions(opts *Options) error {
	if opts.Username != "" && opts.Token == "" {
		return fmt.Errorf("http auth with a username requires a token")
	}
	return nil
}

// getAuthenticator returns the appropriate Authenticator based on the authentication type.
func getAuthenticator(authType string) (Authenticator, error) {
	switch authType {
	case "ssh-key":
		return &SSHKeyAuthenticator{}, nil
	case "ssh-agent":
		return &SSHAgentAuthenticator{}, nil
	case "http", "":
		return &HTTPAuthenticator{}, nil
	default:
		return nil, fmt.Errorf("unknown auth type: %s", authType)
	}
}

// New initializes a fetch Client with the given options.
func New(logger hclog.Logger, globalConfig *config.Config, opts *Options) (*Client, error) {
	authenticator, err := getAuthenticator(opts.AuthType)
	if err != nil {
		logger.Error("unsupported authentication type", "error", err)
		return nil, fmt.Errorf("unsupported authentication type: %w", err)
	}

	if err := authenticator.ValidateOptions(opts); err != nil {
		logger.Error("invalid fetch options", "error", err)
		return nil, fmt.Errorf("invalid fetch options: %w", err)
	}

	auth, err := authenticator.SetupAuth(opts, logger)
	if err != nil {
		logger.Error("failed to set up Git authentication", "error", err)
		return nil, fmt.Errorf("failed to set up Git authentication: %w", err)
	}

	return &Client{
		logger:       logger,
		auth:         auth,
		timeout:      globalConfig.GitTimeout(),
		globalConfig: globalConfig,
	}, nil
}
