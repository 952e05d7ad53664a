package workflow

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests drive the flow against real git repositories with a local bare
// remote, exercising the full detect/stage/commit/push pipeline.

func gitOut(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// newPushableRepo initializes a repository with an initial commit pushed to a
// local bare remote named origin, and returns the work tree and remote paths.
func newPushableRepo(t *testing.T) (workDir, remoteDir string) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not found in PATH")
	}

	remoteDir = t.TempDir()
	gitOut(t, remoteDir, "init", "--bare", "-b", "main", ".")

	workDir = t.TempDir()
	gitOut(t, workDir, "init", "-b", "main", ".")
	gitOut(t, workDir, "config", "user.name", "gwp-test")
	gitOut(t, workDir, "config", "user.email", "gwp-test@example.com")
	gitOut(t, workDir, "config", "commit.gpgsign", "false")

	require.NoError(t, os.WriteFile(filepath.Join(workDir, "README.md"), []byte("# repo\n"), 0o644))
	gitOut(t, workDir, "add", "-A")
	gitOut(t, workDir, "commit", "-m", "chore: initial commit")
	gitOut(t, workDir, "remote", "add", "origin", remoteDir)
	gitOut(t, workDir, "push", "-u", "origin", "main")

	return workDir, remoteDir
}

func TestCommitAndPush_RealRepository(t *testing.T) {
	workDir, remoteDir := newPushableRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(workDir, "config.yaml"), []byte("debug: true\n"), 0o644))

	flow := New(&fakeLLM{message: "feat: update config"}, Options{
		OutWriter: io.Discard,
		ErrWriter: io.Discard,
	})

	outcome := flow.CommitAndPush(context.Background(), workDir, false)

	require.Equal(t, StatusCommitted, outcome.Status, "outcome: %+v", outcome)
	assert.Equal(t, "feat: update config", outcome.Message.Text)
	assert.Equal(t, "feat: update config", gitOut(t, remoteDir, "log", "-1", "--format=%s"),
		"commit must be pushed to origin/main")
	assert.Empty(t, gitOut(t, workDir, "status", "--porcelain"), "tree must be clean after the run")
}

func TestCommitAndPush_RealRepositoryIdempotent(t *testing.T) {
	workDir, _ := newPushableRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(workDir, "notes.txt"), []byte("n\n"), 0o644))

	llm := &fakeLLM{message: "docs: add notes"}
	flow := New(llm, Options{OutWriter: io.Discard, ErrWriter: io.Discard})

	first := flow.CommitAndPush(context.Background(), workDir, false)
	require.Equal(t, StatusCommitted, first.Status)

	second := flow.CommitAndPush(context.Background(), workDir, false)
	assert.Equal(t, StatusSkippedClean, second.Status, "second run on a clean tree must do nothing")
	assert.Equal(t, 1, llm.calls, "no generation may happen for a clean tree")
}

func TestCommitAndPush_RealRepositoryFallback(t *testing.T) {
	workDir, remoteDir := newPushableRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(workDir, "a.txt"), []byte("a\n"), 0o644))

	flow := New(&fakeLLM{err: os.ErrDeadlineExceeded}, Options{
		OutWriter: io.Discard,
		ErrWriter: io.Discard,
	})

	outcome := flow.CommitAndPush(context.Background(), workDir, false)

	require.Equal(t, StatusCommitted, outcome.Status)
	assert.True(t, outcome.Message.Fallback)
	assert.Equal(t, FallbackMessage, gitOut(t, remoteDir, "log", "-1", "--format=%s"))
}
