package git

import (
	"strconv"
	"strings"
)

// FileChange is one entry of a diff summary.
type FileChange struct {
	Path       string
	Insertions int
	Deletions  int
	// Binary marks files for which git reports no line counts.
	Binary bool
}

// parseNumstat parses `git diff --numstat` output. Lines are
// "<insertions>\t<deletions>\t<path>"; binary files report "-" for both counts.
func parseNumstat(output string) []FileChange {
	var changes []FileChange

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			continue
		}

		change := FileChange{Path: fields[2]}
		if fields[0] == "-" || fields[1] == "-" {
			change.Binary = true
		} else {
			insertions, err := strconv.Atoi(fields[0])
			if err != nil {
				continue
			}
			deletions, err := strconv.Atoi(fields[1])
			if err != nil {
				continue
			}
			change.Insertions = insertions
			change.Deletions = deletions
		}

		changes = append(changes, change)
	}

	return changes
}

// mergeNumstat combines unstaged and staged summaries, summing counts for
// files present in both while keeping first-seen order.
func mergeNumstat(unstaged, staged []FileChange) []FileChange {
	index := make(map[string]int)
	var merged []FileChange

	for _, list := range [][]FileChange{unstaged, staged} {
		for _, change := range list {
			if i, ok := index[change.Path]; ok {
				merged[i].Insertions += change.Insertions
				merged[i].Deletions += change.Deletions
				merged[i].Binary = merged[i].Binary || change.Binary
				continue
			}
			index[change.Path] = len(merged)
			merged = append(merged, change)
		}
	}

	return merged
}

// parseSubmoduleStatus parses `git submodule status` output. Lines look like
// " 1234abcd path/to/sub (v1.2.3)"; the leading rune may be ' ', '+', '-' or 'U'.
func parseSubmoduleStatus(output string) []string {
	var paths []string

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Strip state markers git prefixes to the hash.
		line = strings.TrimLeft(line, "+-U")

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		paths = append(paths, fields[1])
	}

	return paths
}
