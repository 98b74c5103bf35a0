package config

import "time"

// Built-in defaults applied wherever the config file leaves a field unset.
const (
	DefaultToolchainCommand = "tsc"
	DefaultBlockTimeout     = 5 * time.Second
	DefaultGitTimeout       = 10 * time.Minute
	DefaultGitDepth         = 1
	DefaultGitTargetRoot    = ".docsentry/repos"
)

// DefaultLanguages is the default allow-list of code block tags to check.
var DefaultLanguages = []string{"typescript", "ts"}

// DefaultHTTPConfig returns the base settings for the external link checker
// client.
func DefaultHTTPConfig() HTTPClient {
	return HTTPClient{
		Debug:            false,
		RetryCount:       2,
		RetryWaitTime:    1 * time.Second,
		RetryMaxWaitTime: 3 * time.Second,
		Timeout:          10 * time.Second,
	}
}

// ToolchainCommand resolves the configured type-checker binary.
func (c *Config) ToolchainCommand() string {
	return SetThen(c.Checker.ToolchainCommand, DefaultToolchainCommand)
}

// BlockTimeout resolves the per-block toolchain timeout.
func (c *Config) BlockTimeout() time.Duration {
	return SetThen(c.Checker.BlockTimeout, DefaultBlockTimeout)
}

// TargetLanguages resolves the language allow-list.
func (c *Config) TargetLanguages() []string {
	if len(c.Checker.Languages) > 0 {
		return c.Checker.Languages
	}
	return DefaultLanguages
}

// GitTimeout resolves the clone/update timeout.
func (c *Config) GitTimeout() time.Duration {
	return SetThen(c.GitClient.Timeout, DefaultGitTimeout)
}

// GitDepth resolves the clone depth.
func (c *Config) GitDepth() int {
	return SetThen(c.GitClient.Depth, DefaultGitDepth)
}

// GitTargetRoot resolves the folder repositories are cloned under.
func (c *Config) GitTargetRoot() string {
	return SetThen(c.GitClient.TargetRoot, DefaultGitTargetRoot)
}
