package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

const (
	// PackagesDirName is the fixed subdirectory holding nested repositories.
	PackagesDirName = "packages"

	DefaultRemote = "origin"
	DefaultBranch = "main"
)

// ErrPackagesDirMissing is the only fatal precondition of a workspace run.
var ErrPackagesDirMissing = errors.New("packages directory not found")

// Run processes the whole workspace: every nested repository concurrently,
// then the root repository. The returned outcomes cover nested repositories
// in discovery order followed by the root. Individual repository failures are
// recorded in the outcomes, not in the returned error; the error is non-nil
// only for fatal conditions.
func (f *Flow) Run(ctx context.Context) ([]Outcome, error) {
	rootDir := f.opts.RootDir
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		rootDir = wd
	}

	nestedDirs, err := discoverNested(rootDir)
	if err != nil {
		return nil, err
	}

	f.warnDiscoveryDrift(ctx, rootDir, nestedDirs)

	// Fan out over nested repositories; the errgroup is only a join point,
	// workers record their outcome and never return an error.
	outcomes := make([]Outcome, len(nestedDirs), len(nestedDirs)+1)
	var g errgroup.Group
	for i, dir := range nestedDirs {
		g.Go(func() error {
			outcomes[i] = f.CommitAndPush(ctx, dir, false)
			return nil
		})
	}
	_ = g.Wait()

	// The root goes last so its commit captures refreshed nested references.
	outcomes = append(outcomes, f.CommitAndPush(ctx, rootDir, true))

	return outcomes, nil
}

// discoverNested lists the immediate subdirectories of packages/.
func discoverNested(rootDir string) ([]string, error) {
	pkgRoot := filepath.Join(rootDir, PackagesDirName)

	info, err := os.Stat(pkgRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPackagesDirMissing, pkgRoot)
	}

	entries, err := os.ReadDir(pkgRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", pkgRoot, err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(pkgRoot, entry.Name()))
		}
	}
	return dirs, nil
}

// warnDiscoveryDrift logs when the filesystem listing of packages/ and the
// root repository's registered submodules disagree. The filesystem listing
// drives commit processing; the submodule metadata drives ref refreshing.
func (f *Flow) warnDiscoveryDrift(ctx context.Context, rootDir string, nestedDirs []string) {
	registered, err := f.gitFor(rootDir).SubmodulePaths(ctx)
	if err != nil {
		// refreshSubmoduleRefs reports listing failures itself.
		return
	}

	registeredSet := make(map[string]bool, len(registered))
	for _, path := range registered {
		registeredSet[filepath.Join(rootDir, filepath.FromSlash(path))] = true
	}

	nestedSet := make(map[string]bool, len(nestedDirs))
	for _, dir := range nestedDirs {
		nestedSet[dir] = true
		if !registeredSet[dir] {
			f.logf("warning: %s exists under %s but is not a registered submodule",
				filepath.Base(dir), PackagesDirName)
		}
	}

	for _, path := range registered {
		dir := filepath.Join(rootDir, filepath.FromSlash(path))
		if filepath.Dir(dir) == filepath.Join(rootDir, PackagesDirName) && !nestedSet[dir] {
			f.logf("warning: submodule %s is registered but missing from %s",
				path, PackagesDirName)
		}
	}
}
