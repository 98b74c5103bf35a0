package fetch

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docsentry/docsentry/internal/fetcher"
	"github.com/docsentry/docsentry/pkg/shared/config"
	"github.com/docsentry/docsentry/pkg/shared/logger"
)

// RunOptionsFetch holds the arguments for the fetch command.
type RunOptionsFetch struct {
	Branch       string
	TargetFolder string
	AuthType     string
	SSHKeyPath   string
	Username     string
}

// Global variables for configuration and command arguments
var (
	AppConfig         *config.Config
	fetchOptions      RunOptionsFetch
	exampleFetchUsage = `  # Clone a public documentation repository
  docsentry fetch https://github.com/org/docs

  # Clone a specific branch into a chosen folder
  docsentry fetch --branch release --target ./checkout https://github.com/org/docs

  # Clone over SSH with a key
  docsentry fetch --auth-type ssh-key --ssh-key ~/.ssh/id_ed25519 git@github.com:org/docs.git`
)

// FetchCmd represents the fetch command.
var FetchCmd = &cobra.Command{
	Use:                   "fetch [--branch NAME] [--target PATH] [--auth-type http|ssh-key|ssh-agent] CLONE_URL",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleFetchUsage,
	Short:                 "Clone or update a documentation repository for offline validation",
	Args:                  cobra.ExactArgs(1),
	RunE:                  runFetchCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runFetchCommand executes the fetch command.
func runFetchCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-fetch")

	opts := fetcher.Options{
		CloneURL:       args[0],
		Branch:         fetchOptions.Branch,
		TargetFolder:   fetchOptions.TargetFolder,
		AuthType:       fetchOptions.AuthType,
		SSHKeyPath:     fetchOptions.SSHKeyPath,
		SSHKeyPassword: os.Getenv("DOCSENTRY_SSH_KEY_PASSWORD"),
		Username:       fetchOptions.Username,
		Token:          os.Getenv("DOCSENTRY_GIT_TOKEN"),
	}
	if err := validateFetchArgs(&opts); err != nil {
		log.Error("invalid fetch arguments", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := fetcher.New(log, AppConfig, &opts)
	if err != nil {
		return err
	}

	folder, err := client.Fetch(ctx, &opts)
	if err != nil {
		log.Error("fetch command failed", "error", err)
		return err
	}

	fmt.Println(folder)
	return nil
}

// Initialize flags for the fetch command.
func init() {
	FetchCmd.Flags().StringVarP(&fetchOptions.Branch, "branch", "b", "", "Branch to check out (default is the remote HEAD).")
	FetchCmd.Flags().StringVar(&fetchOptions.TargetFolder, "target", "", "Checkout folder (default derives from the clone URL).")
	FetchCmd.Flags().StringVar(&fetchOptions.AuthType, "auth-type", "http", "Authentication type: http, ssh-key, or ssh-agent.")
	FetchCmd.Flags().StringVar(&fetchOptions.SSHKeyPath, "ssh-key", "", "Path to the SSH private key for ssh-key auth.")
	FetchCmd.Flags().StringVar(&fetchOptions.Username, "username", "", "Username for http auth; the token comes from DOCSENTRY_GIT_TOKEN.")
	FetchCmd.Flags().BoolP("help", "h", false, "Show help for the fetch command.")
}
