package watch

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/report"
	"github.com/docsentry/docsentry/internal/runner"
	"github.com/docsentry/docsentry/internal/toolchain"
	"github.com/docsentry/docsentry/internal/watcher"
	"github.com/docsentry/docsentry/pkg/shared/config"
	"github.com/docsentry/docsentry/pkg/shared/logger"
)

// RunOptionsWatch holds the arguments for the watch command.
type RunOptionsWatch struct {
	Root         string
	Extensions   []string
	Languages    []string
	MaxParallel  int
	Debounce     time.Duration
	TSConfigPath string
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	watchOptions      RunOptionsWatch
	exampleWatchUsage = `  # Re-validate ./docs on every save
  docsentry watch

  # Watch another tree with a longer settle window
  docsentry watch --root ./site/docs --debounce 2s`
)

// WatchCmd represents the watch command.
var WatchCmd = &cobra.Command{
	Use:                   "watch [--root PATH] [--ext LIST] [--lang LIST] [--debounce DURATION]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleWatchUsage,
	Short:                 "Re-run validation whenever documents change",
	RunE:                  runWatchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runWatchCommand executes the watch command.
func runWatchCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-watch")

	if err := validateWatchArgs(&watchOptions); err != nil {
		log.Error("invalid watch arguments", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var extraArgs []string
	if watchOptions.TSConfigPath != "" {
		args, err := toolchain.CompilerArgsFromTSConfig(watchOptions.TSConfigPath)
		if err != nil {
			log.Error("failed to read tsconfig", "error", err)
			return err
		}
		extraArgs = args
	}

	tc := toolchain.NewTSC(AppConfig, extraArgs, log)
	languages := watchOptions.Languages
	if len(languages) == 0 {
		languages = AppConfig.TargetLanguages()
	}

	r := runner.New(AppConfig, runner.Options{
		Root:        watchOptions.Root,
		Extensions:  watchOptions.Extensions,
		Languages:   languages,
		MaxParallel: watchOptions.MaxParallel,
	}, tc, nil, log)

	// one pass up front so the terminal shows the current state
	runPass(ctx, r, log)

	w, err := watcher.New(watchOptions.Root, watchOptions.Extensions, watchOptions.Debounce, func(ctx context.Context) {
		runPass(ctx, r, log)
	}, log)
	if err != nil {
		return err
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("watch command failed", "error", err)
		return err
	}
	log.Info("watch command stopped")
	return nil
}

// runPass executes one validation cycle. Failures are reported on the
// terminal and the watch keeps running.
func runPass(ctx context.Context, r *runner.Runner, log hclog.Logger) {
	rep, err := r.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("validation pass failed", "error", err)
		return
	}
	if err := report.WriteText(os.Stdout, rep); err != nil {
		log.Error("failed to render report", "error", err)
	}
}

// Initialize flags for the watch command.
func init() {
	WatchCmd.Flags().StringVar(&watchOptions.Root, "root", "./docs", "Root directory of the documentation tree to watch.")
	WatchCmd.Flags().StringSliceVar(&watchOptions.Extensions, "ext", []string{".md", ".mdx"}, "Comma-separated list of file extensions to load.")
	WatchCmd.Flags().StringSliceVar(&watchOptions.Languages, "lang", nil, "Comma-separated list of code block languages to type-check (default typescript,ts).")
	WatchCmd.Flags().IntVarP(&watchOptions.MaxParallel, "max-parallel", "j", runtime.NumCPU(), "Number of documents checked concurrently.")
	WatchCmd.Flags().DurationVar(&watchOptions.Debounce, "debounce", watcher.DefaultDebounce, "Settle window before a change triggers revalidation.")
	WatchCmd.Flags().StringVar(&watchOptions.TSConfigPath, "tsconfig", "", "tsconfig.json whose compilerOptions are forwarded to the toolchain.")
	WatchCmd.Flags().BoolP("help", "h", false, "Show help for the watch command.")
}
