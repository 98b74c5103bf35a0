package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/docsentry/docsentry/cmd/check"
	"github.com/docsentry/docsentry/cmd/fetch"
	"github.com/docsentry/docsentry/cmd/list"
	"github.com/docsentry/docsentry/cmd/version"
	"github.com/docsentry/docsentry/cmd/watch"
	"github.com/docsentry/docsentry/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "docsentry [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Docsentry validates code examples and links in documentation trees.",
		Long: `Docsentry is a batch validator for documentation sites. It extracts
fenced code blocks from markdown/MDX files, type-checks them against an
external toolchain, scans for hardcoded secrets and missing error handling,
and resolves internal links, producing a deterministic report and a CI exit
status.`,
	}
)

// normalizeFlags accepts underscore spellings for multi-word flags.
func normalizeFlags(f *flag.FlagSet, name string) flag.NormalizedName {
	return flag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(normalizeFlags)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is docsentry.yml)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(check.CheckCmd)
	rootCmd.AddCommand(list.ListCmd)
	rootCmd.AddCommand(watch.WatchCmd)
	rootCmd.AddCommand(fetch.FetchCmd)
}

// Execute runs the root command and maps errors to process exit codes:
// 0 pass, 1 failed checks or usage errors, 2 fatal toolchain condition.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var coded interface{ ExitCode() int }
		if errors.As(err, &coded) {
			return coded.ExitCode()
		}
		return 1
	}
	return 0
}

func initConfig() {
	explicit := cfgFile != ""
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigFile
	}

	var err error
	AppConfig, err = config.LoadConfig(path, explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	check.Init(AppConfig)
	list.Init(AppConfig)
	watch.Init(AppConfig)
	fetch.Init(AppConfig)
}
