package fetcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gitsight/go-vcsurl"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	log "github.com/docsentry/docsentry/pkg/shared/logger"
)

// Fetch clones the documentation repository described by opts and returns
// the checkout folder, ready to be passed as a validation root. An existing
// checkout is updated instead of re-cloned.
func (c *Client) Fetch(ctx context.Context, opts *Options) (string, error) {
	info, err := vcsurl.Parse(opts.CloneURL)
	if err != nil {
		c.logger.Error("failed to parse VCS URL", "VCSURL", opts.CloneURL, "error", err)
		return "", fmt.Errorf("failed to parse VCS URL: %w", err)
	}

	targetFolder := opts.TargetFolder
	if targetFolder == "" {
		targetFolder = filepath.Join(c.globalConfig.GitTargetRoot(), string(info.Host), info.FullName)
	}

	output := log.GetLoggerOutput(c.logger)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cloneOptions := &git.CloneOptions{
		Auth:            c.auth,
		URL:             opts.CloneURL,
		Progress:        output,
		Depth:           c.globalConfig.GitDepth(),
		InsecureSkipTLS: c.globalConfig.GitClient.InsecureTLS,
	}
	if opts.Branch != "" {
		cloneOptions.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
		cloneOptions.SingleBranch = true
	}

	c.logger.Debug("starting repository fetch", "repository", info.Name, "branch", opts.Branch, "cloneURL", opts.CloneURL, "targetFolder", targetFolder)
	_, err = git.PlainCloneContext(ctx, targetFolder, false, cloneOptions)
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryAlreadyExists) {
			c.logger.Error("error occurred during clone", "error", err, "targetFolder", targetFolder)
			return "", fmt.Errorf("error occurred during clone: %w", err)
		}

		c.logger.Info("repository already exists, updating...", "targetFolder", targetFolder)
		repo, err := git.PlainOpen(targetFolder)
		if err != nil {
			c.logger.Error("cannot open existing repository", "error", err, "targetFolder", targetFolder)
			return "", fmt.Errorf("cannot open existing repository: %w", err)
		}

		if err := c.pullLatestChanges(ctx, repo, cloneOptions.ReferenceName); err != nil {
			return "", err
		}
	}

	c.logger.Info("repository operation completed successfully", "repository", info.Name, "targetFolder", targetFolder)
	return targetFolder, nil
}

// pullLatestChanges updates an existing checkout.
func (c *Client) pullLatestChanges(ctx context.Context, repo *git.Repository, branch plumbing.ReferenceName) error {
	w, err := repo.Worktree()
	if err != nil {
		c.logger.Error("error accessing worktree", "error", err)
		return fmt.Errorf("error accessing worktree: %w", err)
	}

	c.logger.Debug("attempting to pull the latest changes", "branch", branch)
	err = w.PullContext(ctx, &git.PullOptions{
		Auth:            c.auth,
		ReferenceName:   branch,
		Progress:        log.GetLoggerOutput(c.logger),
		Force:           true,
		InsecureSkipTLS: c.globalConfig.GitClient.InsecureTLS,
	})
	if err != nil {
		if errors.Is(err, git.NoErrAlreadyUpToDate) {
			c.logger.Info("repository already up-to-date")
			return nil
		}
		c.logger.Error("error occurred during pull", "error", err)
		return fmt.Errorf("error occurred during pull: %w", err)
	}
	return nil
}
