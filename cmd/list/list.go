package list

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/inventory"
	"github.com/docsentry/docsentry/pkg/shared/config"
	"github.com/docsentry/docsentry/pkg/shared/logger"
)

// RunOptionsList holds the arguments for the list command.
type RunOptionsList struct {
	Root       string
	Extensions []string
	OutputPath string
}

// Global variables for configuration and command arguments
var (
	AppConfig        *config.Config
	listOptions      RunOptionsList
	exampleListUsage = `  # List documents and code blocks under ./docs
  docsentry list

  # Save the inventory for tooling
  docsentry list --root ./site/docs --output inventory.json`
)

// ListCmd represents the list command.
var ListCmd = &cobra.Command{
	Use:                   "list [--root PATH] [--ext LIST] [--output PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleListUsage,
	Short:                 "Enumerate documents and code blocks without running checks",
	RunE:                  runListCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runListCommand executes the list command.
func runListCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-list")

	if err := validateListArgs(&listOptions); err != nil {
		log.Error("invalid list arguments", "error", err)
		return err
	}

	inv, err := inventory.Build(cmd.Context(), listOptions.Root, listOptions.Extensions, log)
	if err != nil {
		log.Error("list command failed", "error", err)
		return err
	}

	if listOptions.OutputPath != "" {
		if err := inventory.WriteJSONFile(inv, listOptions.OutputPath); err != nil {
			return err
		}
		log.Info("inventory saved", "path", listOptions.OutputPath)
		return nil
	}

	return inv.WriteText(os.Stdout)
}

// Initialize flags for the list command.
func init() {
	ListCmd.Flags().StringVar(&listOptions.Root, "root", "./docs", "Root directory of the documentation tree.")
	ListCmd.Flags().StringSliceVar(&listOptions.Extensions, "ext", []string{".md", ".mdx"}, "Comma-separated list of file extensions to load.")
	ListCmd.Flags().StringVarP(&listOptions.OutputPath, "output", "o", "", "Write the inventory as JSON to this path instead of stdout.")
	ListCmd.Flags().BoolP("help", "h", false, "Show help for the list command.")
}
