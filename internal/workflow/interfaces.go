// Package workflow orchestrates commit-and-push processing across a
// multi-repository workspace.
package workflow

import (
	"context"

	"github.com/samzong/gwp/internal/git"
)

// GitClient abstracts the git operations needed for one repository.
type GitClient interface {
	IsGitRepository() bool
	HasChanges(ctx context.Context) (bool, error)
	GetDiff(ctx context.Context) (string, error)
	GetDiffStats(ctx context.Context) ([]git.FileChange, error)
	ParseChangedFiles(ctx context.Context) ([]string, error)
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context, remote string, branch string) error
	CheckoutBranch(ctx context.Context, branch string) error
	Pull(ctx context.Context, remote string, branch string) error
	SubmodulePaths(ctx context.Context) ([]string, error)
}

// LLMClient abstracts commit message generation for testability.
type LLMClient interface {
	GenerateCommitMessage(ctx context.Context, prompt string) (string, error)
}
