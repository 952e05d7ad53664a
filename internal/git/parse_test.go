package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumstat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []FileChange
	}{
		{
			name:  "modified files",
			input: "3\t1\tmain.go\n10\t0\tinternal/config/config.go\n",
			expected: []FileChange{
				{Path: "main.go", Insertions: 3, Deletions: 1},
				{Path: "internal/config/config.go", Insertions: 10, Deletions: 0},
			},
		},
		{
			name:     "empty output",
			input:    "",
			expected: nil,
		},
		{
			name:  "binary file",
			input: "-\t-\tassets/logo.png\n",
			expected: []FileChange{
				{Path: "assets/logo.png", Binary: true},
			},
		},
		{
			name:  "path containing spaces",
			input: "1\t2\tdocs/release notes.md\n",
			expected: []FileChange{
				{Path: "docs/release notes.md", Insertions: 1, Deletions: 2},
			},
		},
		{
			name:  "malformed line is skipped",
			input: "3\t1\tmain.go\nnot-a-numstat-line\n0\t5\tREADME.md\n",
			expected: []FileChange{
				{Path: "main.go", Insertions: 3, Deletions: 1},
				{Path: "README.md", Insertions: 0, Deletions: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseNumstat(tt.input))
		})
	}
}

func TestMergeNumstat(t *testing.T) {
	unstaged := []FileChange{
		{Path: "a.go", Insertions: 2, Deletions: 1},
		{Path: "b.go", Insertions: 4, Deletions: 0},
	}
	staged := []FileChange{
		{Path: "b.go", Insertions: 1, Deletions: 3},
		{Path: "c.go", Insertions: 7, Deletions: 7},
	}

	merged := mergeNumstat(unstaged, staged)

	assert.Equal(t, []FileChange{
		{Path: "a.go", Insertions: 2, Deletions: 1},
		{Path: "b.go", Insertions: 5, Deletions: 3},
		{Path: "c.go", Insertions: 7, Deletions: 7},
	}, merged)
}

func TestMergeNumstat_BinaryWins(t *testing.T) {
	merged := mergeNumstat(
		[]FileChange{{Path: "logo.png", Binary: true}},
		[]FileChange{{Path: "logo.png", Insertions: 0, Deletions: 0}},
	)

	assert.Len(t, merged, 1)
	assert.True(t, merged[0].Binary)
}

func TestParseSubmoduleStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name: "clean submodules",
			input: " 47c2a05f1f9bf13c0a1ba5b6f23e29561262e1b2 packages/api (v0.3.0)\n" +
				" 8d3f2b8f1a9c31e0b2c4d5e6f7a8b9c0d1e2f3a4 packages/web (heads/main)\n",
			expected: []string{"packages/api", "packages/web"},
		},
		{
			name:     "uninitialized submodule",
			input:    "-47c2a05f1f9bf13c0a1ba5b6f23e29561262e1b2 packages/api\n",
			expected: []string{"packages/api"},
		},
		{
			name:     "out of sync submodule",
			input:    "+47c2a05f1f9bf13c0a1ba5b6f23e29561262e1b2 packages/api (v0.3.0-2-g47c2a05)\n",
			expected: []string{"packages/api"},
		},
		{
			name:     "no submodules",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSubmoduleStatus(tt.input))
		})
	}
}
