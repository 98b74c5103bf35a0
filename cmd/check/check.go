package check

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/checker"
	"github.com/docsentry/docsentry/internal/report"
	"github.com/docsentry/docsentry/internal/runner"
	"github.com/docsentry/docsentry/internal/toolchain"
	"github.com/docsentry/docsentry/pkg/shared/config"
	sharederrors "github.com/docsentry/docsentry/pkg/shared/errors"
	"github.com/docsentry/docsentry/pkg/shared/httpclient"
	"github.com/docsentry/docsentry/pkg/shared/logger"
)

// RunOptionsCheck holds the arguments for the check command.
type RunOptionsCheck struct {
	Root          string
	Extensions    []string
	Languages     []string
	MaxParallel   int
	FailOnWarning bool
	Format        string
	OutputPath    string
	CheckExternal bool
	TSConfigPath  string
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	checkOptions      RunOptionsCheck
	exampleCheckUsage = `  # Validate the default ./docs tree
  docsentry check

  # Validate a specific tree with four workers
  docsentry check --root ./site/docs --max-parallel 4

  # Check javascript blocks too and escalate warnings
  docsentry check --lang typescript,ts,js,javascript --fail-on-warning

  # Emit a SARIF report for code-scanning upload
  docsentry check --format sarif --output docsentry.sarif

  # Forward compiler options and probe external links
  docsentry check --tsconfig ./tsconfig.json --check-external`
)

// CheckCmd represents the check command.
var CheckCmd = &cobra.Command{
	Use:                   "check [--root PATH] [--ext LIST] [--lang LIST] [--max-parallel N] [--fail-on-warning] [--format text|json|sarif --output PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleCheckUsage,
	Short:                 "Validate code examples, links, and secret hygiene in a documentation tree",
	RunE:                  runCheckCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runCheckCommand executes the check command.
func runCheckCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-check")

	if err := validateCheckArgs(&checkOptions); err != nil {
		log.Error("invalid check arguments", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var extraArgs []string
	if checkOptions.TSConfigPath != "" {
		args, err := toolchain.CompilerArgsFromTSConfig(checkOptions.TSConfigPath)
		if err != nil {
			log.Error("failed to read tsconfig", "error", err)
			return err
		}
		extraArgs = args
	}

	tc := toolchain.NewTSC(AppConfig, extraArgs, log)

	var external *checker.ExternalLinkChecker
	if checkOptions.CheckExternal {
		client := httpclient.InitializeRestyClient(log, AppConfig)
		external = checker.NewExternalLinkChecker(client, log)
	}

	r := runner.New(AppConfig, runner.Options{
		Root:          checkOptions.Root,
		Extensions:    checkOptions.Extensions,
		Languages:     resolveLanguages(&checkOptions, AppConfig),
		MaxParallel:   checkOptions.MaxParallel,
		FailOnWarning: checkOptions.FailOnWarning,
	}, tc, external, log)

	rep, err := r.Run(ctx)
	if err != nil {
		log.Error("check command failed", "error", err)
		return err
	}

	if err := report.WriteText(os.Stdout, rep); err != nil {
		return err
	}
	if err := writeFormattedReport(rep, &checkOptions, log); err != nil {
		return err
	}

	if rep.Failed(checkOptions.FailOnWarning) {
		return sharederrors.NewCheckFailedError(rep.Errors, rep.Warnings)
	}

	log.Info("check command completed successfully")
	return nil
}

// writeFormattedReport saves the machine-readable report when a non-text
// format was requested.
func writeFormattedReport(rep *report.Report, opts *RunOptionsCheck, log hclog.Logger) error {
	switch opts.Format {
	case formatText:
		return nil
	case formatJSON:
		if err := report.WriteJSONFile(rep, opts.OutputPath); err != nil {
			return err
		}
	case formatSarif:
		if err := report.WriteSarifFile(rep, opts.OutputPath); err != nil {
			return err
		}
	}
	log.Info("report saved", "format", opts.Format, "path", opts.OutputPath)
	return nil
}

// resolveLanguages prefers the --lang flag, then the config file, then the
// built-in default.
func resolveLanguages(opts *RunOptionsCheck, cfg *config.Config) []string {
	if len(opts.Languages) > 0 {
		return opts.Languages
	}
	return cfg.TargetLanguages()
}

// Initialize flags for the check command.
func init() {
	CheckCmd.Flags().StringVar(&checkOptions.Root, "root", "./docs", "Root directory of the documentation tree to validate.")
	CheckCmd.Flags().StringSliceVar(&checkOptions.Extensions, "ext", []string{".md", ".mdx"}, "Comma-separated list of file extensions to load.")
	CheckCmd.Flags().StringSliceVar(&checkOptions.Languages, "lang", nil, "Comma-separated list of code block languages to type-check (default typescript,ts).")
	CheckCmd.Flags().IntVarP(&checkOptions.MaxParallel, "max-parallel", "j", runtime.NumCPU(), "Number of documents checked concurrently.")
	CheckCmd.Flags().BoolVar(&checkOptions.FailOnWarning, "fail-on-warning", false, "Exit non-zero when warning findings exist.")
	CheckCmd.Flags().StringVarP(&checkOptions.Format, "format", "f", "text", "Report format: text, json, or sarif.")
	CheckCmd.Flags().StringVarP(&checkOptions.OutputPath, "output", "o", "", "Path for the json or sarif report file.")
	CheckCmd.Flags().BoolVar(&checkOptions.CheckExternal, "check-external", false, "Probe absolute http(s) links (warnings only).")
	CheckCmd.Flags().StringVar(&checkOptions.TSConfigPath, "tsconfig", "", "tsconfig.json whose compilerOptions are forwarded to the toolchain.")
	CheckCmd.Flags().BoolP("help", "h", false, "Show help for the check command.")
}
