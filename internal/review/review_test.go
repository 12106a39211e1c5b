package review

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawndlwd/commentguard/internal/diff"
	"github.com/lawndlwd/commentguard/internal/filter"
	"github.com/lawndlwd/commentguard/internal/types"
)

func fileDiff(name string, body string) string {
	return "diff --git a/" + name + " b/" + name + "\n" +
		"index 1234567..abcdef0 100644\n" +
		"--- a/" + name + "\n" +
		"+++ b/" + name + "\n" +
		body
}

func TestReview(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		violation *types.Violation
		files     int
	}{
		{
			name:  "empty diff",
			input: "",
		},
		{
			name:  "plain note is flagged",
			input: fileDiff("app.go", "@@ -1,2 +1,3 @@\n package app\n+    // this is a plain note\n"),
			violation: &types.Violation{
				FilePath: "app.go",
				Lines:    []string{"+    // this is a plain note"},
			},
			files: 1,
		},
		{
			name:  "WHEN comment passes",
			input: fileDiff("app_test.go", "@@ -1,2 +1,3 @@\n package app\n+// WHEN user logs in\n"),
			files: 1,
		},
		{
			name: "removed and context comments pass",
			input: fileDiff("app.go", "@@ -1,3 +1,2 @@\n // kept note\n-// removed note\n+x := 1\n"),
			files: 1,
		},
		{
			name: "second file reported after a clean first file",
			input: fileDiff("clean.go", "@@ -1 +1,2 @@\n package clean\n+ // THEN something occurs\n") +
				fileDiff("dirty.go", "@@ -1 +1,2 @@\n package dirty\n+\t// todo\n"),
			violation: &types.Violation{
				FilePath: "dirty.go",
				Lines:    []string{"+\t// todo"},
			},
			files: 2,
		},
		{
			name: "only the first offending hunk is reported",
			input: fileDiff("app.go", "@@ -1 +1,2 @@\n package app\n+// first\n@@ -9 +10,2 @@\n+// second\n") +
				fileDiff("other.go", "@@ -1 +1,2 @@\n+// third\n"),
			violation: &types.Violation{
				FilePath: "app.go",
				Lines:    []string{"+// first"},
			},
			files: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New(nil, nil).Review(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.violation, result.Violation)
			assert.Equal(t, tt.violation == nil, result.Clean())
			assert.Equal(t, tt.files, result.Files)
		})
	}
}

func TestReviewMalformedChunk(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	input := "diff --git\n+// hidden\n" + fileDiff("dirty.go", "@@ -1 +1 @@\n+// note\n")
	result, err := New(logger, nil).Review(input)

	require.ErrorIs(t, err, diff.ErrMalformedChunk)
	assert.True(t, result.Clean())
	assert.Zero(t, result.Files)
	assert.Contains(t, logs.String(), "Error while reading diff filename")
	assert.Contains(t, logs.String(), "hidden")
}

func TestReviewIgnore(t *testing.T) {
	input := fileDiff("vendor/lib/lib.go", "@@ -1 +1 @@\n+// vendored note\n") +
		fileDiff("app.go", "@@ -1 +1 @@\n+// WHEN ready\n")

	result, err := New(nil, filter.NewIgnore([]string{"vendor/"})).Review(input)
	require.NoError(t, err)
	assert.True(t, result.Clean())
	assert.Equal(t, 2, result.Files)
}
