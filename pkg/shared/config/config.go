package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config is the explicit per-run configuration passed to every component.
// Nothing in the pipeline reads ambient global state; workers receive a
// reference to this struct instead.
type Config struct {
	Logger     Logger     `yaml:"logger"`
	Checker    Checker    `yaml:"checker"`
	HTTPClient HTTPClient `yaml:"http_client"`
	GitClient  GitClient  `yaml:"git_client"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Checker holds settings for the static checker and the external toolchain.
type Checker struct {
	// Languages is the allow-list of code block language tags to type-check.
	Languages []string `yaml:"languages"`
	// BlockTimeout bounds a single toolchain invocation.
	BlockTimeout time.Duration `yaml:"block_timeout"`
	// ToolchainCommand overrides the type-checker binary, default "tsc".
	ToolchainCommand string `yaml:"toolchain_command"`
	// ToolchainArgs are extra arguments appended to every invocation.
	ToolchainArgs []string `yaml:"toolchain_args"`
	// SecretAllowList extends the built-in list of known-safe placeholder
	// values that must not be reported as hardcoded secrets.
	SecretAllowList []string `yaml:"secret_allow_list"`
}

// GitClient holds settings for fetching remote documentation repositories.
type GitClient struct {
	// Timeout bounds a single clone or update operation.
	Timeout time.Duration `yaml:"timeout"`
	// Depth limits clone history, default 1.
	Depth int `yaml:"depth"`
	// TargetRoot is the folder repositories are cloned under.
	TargetRoot string `yaml:"target_root"`
	// InsecureTLS skips TLS verification on clone, off by default.
	InsecureTLS bool `yaml:"insecure_tls"`
}

// HTTPClient tunes the resty client used by the external link checker.
type HTTPClient struct {
	Debug            bool          `yaml:"debug"`
	RetryCount       int           `yaml:"retry_count"`
	RetryWaitTime    time.Duration `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration `yaml:"retry_max_wait_time"`
	Timeout          time.Duration `yaml:"timeout"`
}

// DefaultConfigFile is looked up in the working directory when no --config
// flag is given.
const DefaultConfigFile = "docsentry.yml"

// LoadConfig reads a YAML config file into a Config. A missing file is only
// an error when the path was requested explicitly; the default file is
// optional and yields an empty config.
func LoadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %q: %w", path, err)
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %q: %w", path, err)
	}

	return cfg, nil
}
