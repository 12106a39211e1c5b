// commentguard is a pre-commit hook that rejects staged changes adding
// line comments other than WHEN/THEN step markers.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lawndlwd/commentguard/internal/diff"
	"github.com/lawndlwd/commentguard/internal/filter"
	"github.com/lawndlwd/commentguard/internal/git"
	"github.com/lawndlwd/commentguard/internal/output"
	"github.com/lawndlwd/commentguard/internal/review"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the hook and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := 0
	cmd := newRootCmd(stdout, stderr, &code)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return code
}

func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	var f flagValues
	cmd := &cobra.Command{
		Use:   "commentguard",
		Short: "Reject staged changes that add plain // comments",
		Long: `commentguard inspects the staged diff and fails when an added line holds a
single-line // comment that does not start with WHEN or THEN.

Examples:
  commentguard
  commentguard --dir ./service --ignore vendor/ --ignore '*.pb.go'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.config()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
			*code = guard(cmd.Context(), cfg, stdout, logger)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	bindFlags(cmd.Flags(), &f)
	return cmd
}

// guard reads the staged diff, reviews it and reports the outcome.
// It is the only place that decides the exit code.
func guard(ctx context.Context, cfg config, stdout io.Writer, logger *slog.Logger) int {
	text, err := git.StagedDiff(ctx, git.StagedOptions{
		RepoPath: cfg.RepoPath,
		GitPath:  cfg.GitPath,
		Exclude:  cfg.Exclude,
		Timeout:  cfg.Timeout,
		Logger:   logger,
	})
	if err != nil {
		if !errors.Is(err, git.ErrTimeout) {
			logger.Error("reading staged diff failed", "err", err)
		}
		return 1
	}

	result, err := review.New(logger, filter.NewIgnore(cfg.Ignore)).Review(text)
	if err != nil {
		if !errors.Is(err, diff.ErrMalformedChunk) {
			logger.Error("review failed", "err", err)
		}
		return 1
	}
	if result.Clean() {
		return 0
	}

	if err := output.PrintViolation(stdout, result.Violation); err != nil {
		logger.Error("writing report failed", "err", err)
	}
	return 1
}
