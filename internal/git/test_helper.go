//go:build !prod

package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireGit skips the test when the git binary is not available.
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not found in PATH")
	}
}

// CreateTempRepo initializes a git repository in a fresh temp directory and
// returns a client bound to it. The process working directory is never
// changed; all operations address the repository by path.
func CreateTempRepo(t *testing.T) *Client {
	t.Helper()
	RequireGit(t)

	dir := t.TempDir()
	client := NewClient(Options{Dir: dir})

	mustRunGit(t, dir, "init", "-b", "main")
	mustRunGit(t, dir, "config", "user.name", "gwp-test")
	mustRunGit(t, dir, "config", "user.email", "gwp-test@example.com")
	mustRunGit(t, dir, "config", "commit.gpgsign", "false")

	return client
}

// WriteFile writes content to a path relative to the repository root.
func WriteFile(t *testing.T, c *Client, name string, content string) {
	t.Helper()

	path := filepath.Join(c.Dir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func mustRunGit(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}
