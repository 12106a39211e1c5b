// Package git reads staged changes from a local git working tree.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultTimeout bounds how long git diff may run before it is killed.
const DefaultTimeout = 15 * time.Second

// drainDelay bounds the wait for output pipes after the process is killed.
const drainDelay = time.Second

// ErrTimeout is returned when git diff does not finish within the timeout.
var ErrTimeout = errors.New("git diff timed out")

// StagedOptions configures how the staged diff is read.
type StagedOptions struct {
	RepoPath string
	GitPath  string
	Exclude  []string
	Timeout  time.Duration
	Logger   *slog.Logger
}

// StagedDiff returns the diff between the index and HEAD for RepoPath,
// leaving out the paths in Exclude.
func StagedDiff(ctx context.Context, opts StagedOptions) (string, error) {
	repo := filepath.Clean(opts.RepoPath)
	gitPath := opts.GitPath
	if gitPath == "" {
		gitPath = "git"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := stagedArgs(repo, opts.Exclude)
	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.WaitDelay = drainDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("reading staged diff", "repo", repo, "args", args)

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Error("Error while trying to communicate with diff",
				"timeout", timeout,
				"stderr", strings.TrimSpace(stderr.String()),
			)
			return "", fmt.Errorf("git %s after %s: %w", strings.Join(args, " "), timeout, ErrTimeout)
		}
		return "", fmt.Errorf("git %s: %w\n%s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	if stderr.Len() > 0 {
		logger.Debug("git diff wrote to stderr", "stderr", strings.TrimSpace(stderr.String()))
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		return "", errors.New("git diff output is not valid UTF-8")
	}
	return string(out), nil
}

func stagedArgs(repo string, exclude []string) []string {
	args := []string{"-C", repo, "diff", "--cached", "--", "."}
	for _, path := range exclude {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		args = append(args, ":(exclude)"+path)
	}
	return args
}

// OwnExecutable returns the running binary's absolute path when it lives
// inside repo, so its own sources and build output are not reviewed.
// It returns nil when the binary is installed elsewhere: git rejects
// exclude pathspecs outside the working tree.
func OwnExecutable(repo string) []string {
	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	root, err := filepath.Abs(repo)
	if err != nil {
		return nil
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if !within(root, exe) {
		return nil
	}
	return []string{exe}
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
