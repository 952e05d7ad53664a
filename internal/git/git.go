// Package git wraps the git binary for a single repository working tree.
// Every operation is bound to the repository directory given at construction
// time, so clients for different repositories can run concurrently.
package git

import (
	"context"
	"io"
	"strings"

	"github.com/samzong/gwp/internal/gitcmd"
	"github.com/samzong/gwp/internal/gitutil"
)

// Options configures a repository client.
type Options struct {
	// Dir is the repository working tree. Empty means the process
	// working directory, which is only acceptable for single-repo use.
	Dir     string
	Verbose bool
	// ErrWriter receives verbose command logging. Defaults to stderr.
	ErrWriter io.Writer
}

// Client executes git operations against one repository.
type Client struct {
	runner gitcmd.Runner
	dir    string
}

// NewClient creates a client bound to opts.Dir.
func NewClient(opts Options) *Client {
	return &Client{
		runner: gitcmd.Runner{Dir: opts.Dir, Verbose: opts.Verbose, Logger: opts.ErrWriter},
		dir:    opts.Dir,
	}
}

// Dir returns the repository directory the client is bound to.
func (c *Client) Dir() string {
	return c.dir
}

// IsGitRepository reports whether the directory is inside a git work tree.
func (c *Client) IsGitRepository() bool {
	result, err := c.runner.Run("rev-parse", "--is-inside-work-tree")
	return err == nil && result.StdoutString(true) == "true"
}

// HasChanges reports whether the working tree has any uncommitted changes,
// including untracked files, deletions, and renames.
func (c *Client) HasChanges(ctx context.Context) (bool, error) {
	result, err := c.runner.RunContext(ctx, "status", "--porcelain")
	if err != nil {
		return false, gitutil.WrapGitError("failed to get git status", result, err)
	}
	return result.StdoutString(true) != "", nil
}

// GetDiff returns the full diff of unstaged and staged changes combined.
func (c *Client) GetDiff(ctx context.Context) (string, error) {
	unstaged, err := c.runner.RunContext(ctx, "diff")
	if err != nil {
		return "", gitutil.WrapGitError("failed to get git diff", unstaged, err)
	}

	staged, err := c.runner.RunContext(ctx, "diff", "--cached")
	if err != nil {
		return "", gitutil.WrapGitError("failed to get git diff --cached", staged, err)
	}

	return unstaged.StdoutString(false) + staged.StdoutString(false), nil
}

// GetDiffStats returns per-file insertion/deletion counts for unstaged and
// staged changes combined. Counts for a file appearing in both are summed.
func (c *Client) GetDiffStats(ctx context.Context) ([]FileChange, error) {
	unstaged, err := c.runner.RunContext(ctx, "diff", "--numstat")
	if err != nil {
		return nil, gitutil.WrapGitError("failed to get git diff --numstat", unstaged, err)
	}

	staged, err := c.runner.RunContext(ctx, "diff", "--cached", "--numstat")
	if err != nil {
		return nil, gitutil.WrapGitError("failed to get git diff --cached --numstat", staged, err)
	}

	return mergeNumstat(
		parseNumstat(unstaged.StdoutString(false)),
		parseNumstat(staged.StdoutString(false)),
	), nil
}

// ParseChangedFiles returns the deduplicated list of files with unstaged or
// staged changes.
func (c *Client) ParseChangedFiles(ctx context.Context) ([]string, error) {
	unstaged, err := c.runner.RunContext(ctx, "diff", "--name-only")
	if err != nil {
		return nil, gitutil.WrapGitError("failed to list changed files", unstaged, err)
	}

	staged, err := c.runner.RunContext(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, gitutil.WrapGitError("failed to list staged files", staged, err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, out := range []string{unstaged.StdoutString(false), staged.StdoutString(false)} {
		for _, file := range strings.Split(out, "\n") {
			file = strings.TrimSpace(file)
			if file == "" || seen[file] {
				continue
			}
			seen[file] = true
			files = append(files, file)
		}
	}

	return files, nil
}

// AddAll stages every working-tree change, including untracked files and
// deletions.
func (c *Client) AddAll(ctx context.Context) error {
	result, err := c.runner.RunContextLogged(ctx, "add", "-A")
	if err != nil {
		return gitutil.WrapGitError("failed to stage changes", result, err)
	}
	return nil
}

// Commit creates a commit with the given message.
func (c *Client) Commit(ctx context.Context, message string) error {
	result, err := c.runner.RunContextLogged(ctx, "commit", "-m", message)
	if err != nil {
		return gitutil.WrapGitError("failed to commit changes", result, err)
	}
	return nil
}

// Push pushes the current branch to remote/branch.
func (c *Client) Push(ctx context.Context, remote string, branch string) error {
	result, err := c.runner.RunContextLogged(ctx, "push", remote, branch)
	if err != nil {
		return gitutil.WrapGitError("failed to push to "+remote+"/"+branch, result, err)
	}
	return nil
}

// CheckoutBranch switches the working tree to the named branch.
func (c *Client) CheckoutBranch(ctx context.Context, branch string) error {
	result, err := c.runner.RunContextLogged(ctx, "checkout", branch)
	if err != nil {
		return gitutil.WrapGitError("failed to checkout "+branch, result, err)
	}
	return nil
}

// Pull fetches and fast-forwards the current branch from remote/branch.
func (c *Client) Pull(ctx context.Context, remote string, branch string) error {
	result, err := c.runner.RunContextLogged(ctx, "pull", remote, branch)
	if err != nil {
		return gitutil.WrapGitError("failed to pull from "+remote+"/"+branch, result, err)
	}
	return nil
}

// SubmodulePaths returns the submodule paths registered in the repository's
// git metadata, in the order git reports them.
func (c *Client) SubmodulePaths(ctx context.Context) ([]string, error) {
	result, err := c.runner.RunContext(ctx, "submodule", "status")
	if err != nil {
		return nil, gitutil.WrapGitError("failed to list submodules", result, err)
	}
	return parseSubmoduleStatus(result.StdoutString(false)), nil
}
