package config

import "fmt"

// ValidateConfig checks config file values that cannot be repaired with
// defaults.
func ValidateConfig(cfg *Config) error {
	if cfg.Checker.BlockTimeout < 0 {
		return fmt.Errorf("checker.block_timeout must not be negative")
	}
	if cfg.HTTPClient.RetryCount < 0 {
		return fmt.Errorf("http_client.retry_count must not be negative")
	}
	if cfg.GitClient.Depth < 0 {
		return fmt.Errorf("git_client.depth must not be negative")
	}
	for _, lang := range cfg.Checker.Languages {
		if lang == "" {
			return fmt.Errorf("checker.languages must not contain empty entries")
		}
	}
	return nil
}
