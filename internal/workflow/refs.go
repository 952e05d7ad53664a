package workflow

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// refreshSubmoduleRefs checks out and fast-forwards the tracking branch of
// every submodule registered in the root repository's metadata. Paths are
// refreshed concurrently; each path's failure is logged and absorbed so the
// root's own commit flow always proceeds. In dry-run mode the refresh is
// reported but no working tree is touched.
func (f *Flow) refreshSubmoduleRefs(ctx context.Context, rootDir string) {
	root := f.gitFor(rootDir)

	paths, err := root.SubmodulePaths(ctx)
	if err != nil {
		f.logf("[root] failed to list submodules: %v", err)
		return
	}
	if len(paths) == 0 {
		return
	}

	if f.opts.DryRun {
		f.logf("[root] dry run: would refresh %d submodule(s) from %s/%s",
			len(paths), f.opts.Remote, f.opts.Branch)
		return
	}

	var g errgroup.Group
	for _, path := range paths {
		g.Go(func() error {
			sub := f.gitFor(filepath.Join(rootDir, path))

			if err := sub.CheckoutBranch(ctx, f.opts.Branch); err != nil {
				f.logf("[root] submodule %s: %v", path, err)
				return nil
			}
			if err := sub.Pull(ctx, f.opts.Remote, f.opts.Branch); err != nil {
				f.logf("[root] submodule %s: %v", path, err)
				return nil
			}

			f.logf("[root] submodule %s fast-forwarded from %s/%s",
				path, f.opts.Remote, f.opts.Branch)
			return nil
		})
	}
	_ = g.Wait()
}
