package workflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samzong/gwp/internal/formatter"
	"github.com/samzong/gwp/internal/git"
	"github.com/samzong/gwp/internal/ui"
)

// Options controls workspace processing behavior.
type Options struct {
	// RootDir is the workspace root. Empty means the working directory.
	RootDir string
	// Remote and Branch identify the push target of every repository.
	Remote string
	Branch string
	// DryRun reports what would happen without staging, generating,
	// committing, or pushing.
	DryRun    bool
	Verbose   bool
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Flow runs the commit-and-push pipeline over workspace repositories.
type Flow struct {
	llm    LLMClient
	opts   Options
	gitFor func(dir string) GitClient
}

// New creates a Flow using real git clients bound to each repository path.
func New(llm LLMClient, opts Options) *Flow {
	if opts.Remote == "" {
		opts.Remote = DefaultRemote
	}
	if opts.Branch == "" {
		opts.Branch = DefaultBranch
	}
	if opts.OutWriter == nil {
		opts.OutWriter = os.Stdout
	}
	if opts.ErrWriter == nil {
		opts.ErrWriter = os.Stderr
	}

	verbose := opts.Verbose
	errWriter := opts.ErrWriter
	return &Flow{
		llm:  llm,
		opts: opts,
		gitFor: func(dir string) GitClient {
			return git.NewClient(git.Options{Dir: dir, Verbose: verbose, ErrWriter: errWriter})
		},
	}
}

// SetGitFactory replaces the git client factory. Used in tests.
func (f *Flow) SetGitFactory(gitFor func(dir string) GitClient) {
	f.gitFor = gitFor
}

// CommitAndPush processes one repository: refresh submodule refs when it is
// the root, then detect, stage, generate a message, commit, and push. Every
// failure is absorbed into the returned outcome.
func (f *Flow) CommitAndPush(ctx context.Context, dir string, isRoot bool) Outcome {
	name := repoName(dir, isRoot)
	outcome := Outcome{Repo: name}

	if isRoot {
		f.refreshSubmoduleRefs(ctx, dir)
	}

	g := f.gitFor(dir)

	if !g.IsGitRepository() {
		return f.fail(outcome, fmt.Errorf("%s is not a git repository", dir))
	}

	dirty, err := g.HasChanges(ctx)
	if err != nil {
		return f.fail(outcome, err)
	}
	if !dirty {
		f.logf("[%s] working tree clean, nothing to commit", name)
		outcome.Status = StatusSkippedClean
		return outcome
	}

	// The diff is captured before staging; the generated message describes
	// this snapshot even if the tree changes underneath concurrently.
	diff, err := g.GetDiff(ctx)
	if err != nil {
		return f.fail(outcome, err)
	}

	stats, err := g.GetDiffStats(ctx)
	if err != nil {
		return f.fail(outcome, err)
	}
	f.reportChanges(name, stats)

	changedFiles, err := g.ParseChangedFiles(ctx)
	if err != nil {
		return f.fail(outcome, err)
	}

	if f.opts.DryRun {
		f.logf("[%s] dry run: would stage, commit, and push to %s/%s",
			name, f.opts.Remote, f.opts.Branch)
		outcome.Status = StatusDryRun
		return outcome
	}

	if err := g.AddAll(ctx); err != nil {
		return f.fail(outcome, err)
	}

	outcome.Message = f.generateMessage(ctx, name, changedFiles, diff)

	if err := g.Commit(ctx, outcome.Message.Text); err != nil {
		return f.fail(outcome, err)
	}

	if err := g.Push(ctx, f.opts.Remote, f.opts.Branch); err != nil {
		f.logf("[%s] commit created but push failed, repository left unpushed", name)
		return f.fail(outcome, err)
	}

	f.logf("[%s] committed and pushed: %s", name, outcome.Message.Text)
	outcome.Status = StatusCommitted
	return outcome
}

// generateMessage asks the LLM for a message and substitutes the fallback on
// any failure. Generation errors never abort the repository's pipeline.
func (f *Flow) generateMessage(ctx context.Context, name string, changedFiles []string, diff string) Message {
	prompt := formatter.BuildPrompt(changedFiles, diff)

	sp := ui.NewSpinner(fmt.Sprintf("Generating commit message for %s...", name), f.opts.ErrWriter)
	sp.Start()
	text, err := f.llm.GenerateCommitMessage(ctx, prompt)
	sp.Stop()
	if err != nil {
		f.logf("[%s] message generation failed, using fallback: %v", name, err)
		return Message{Text: FallbackMessage, Fallback: true, Cause: err}
	}
	return Message{Text: text}
}

func (f *Flow) reportChanges(name string, stats []git.FileChange) {
	f.logf("[%s] %d file(s) changed:", name, len(stats))
	for _, change := range stats {
		if change.Binary {
			f.logf("[%s]   %s (binary)", name, change.Path)
			continue
		}
		f.logf("[%s]   %s +%d -%d", name, change.Path, change.Insertions, change.Deletions)
	}
}

func (f *Flow) fail(outcome Outcome, err error) Outcome {
	f.logf("[%s] %v", outcome.Repo, err)
	outcome.Status = StatusFailed
	outcome.Err = err
	return outcome
}

func (f *Flow) logf(format string, args ...any) {
	fmt.Fprintf(f.opts.ErrWriter, format+"\n", args...)
}

func repoName(dir string, isRoot bool) string {
	if isRoot {
		return "root"
	}
	return filepath.Base(dir)
}
