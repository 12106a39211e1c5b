package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/lawndlwd/commentguard/internal/git"
)

type config struct {
	RepoPath string
	GitPath  string
	Timeout  time.Duration
	Exclude  []string
	Ignore   []string
	LogLevel slog.Level
}

// flagValues holds the raw flag values bound to the root command.
type flagValues struct {
	repoPath string
	gitPath  string
	timeout  time.Duration
	exclude  []string
	ignore   []string
	logLevel string
}

func bindFlags(fs *pflag.FlagSet, f *flagValues) {
	fs.StringVar(&f.repoPath, "dir", env(".", "COMMENTGUARD_DIR"), "Working tree to inspect")
	fs.StringVar(&f.gitPath, "git", env("git", "COMMENTGUARD_GIT"), "git binary to run")
	fs.DurationVar(&f.timeout, "timeout", envDuration("COMMENTGUARD_TIMEOUT", git.DefaultTimeout), "How long to wait for git diff")
	fs.StringSliceVar(&f.exclude, "exclude", envList("COMMENTGUARD_EXCLUDE"), "Paths left out of the diff (default: this executable when inside the tree)")
	fs.StringSliceVar(&f.ignore, "ignore", envList("COMMENTGUARD_IGNORE"), "Glob patterns for files to skip (\"vendor/\" skips a directory)")
	fs.StringVar(&f.logLevel, "log-level", env("info", "COMMENTGUARD_LOG_LEVEL"), "Log level: debug, info, warn or error")
}

func (f *flagValues) config() (config, error) {
	if f.timeout <= 0 {
		return config{}, fmt.Errorf("timeout must be positive, got %s", f.timeout)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
		return config{}, fmt.Errorf("invalid log level %q", f.logLevel)
	}

	repoPath := f.repoPath
	if repoPath == "" {
		return config{}, errors.New("dir must not be empty")
	}

	exclude := f.exclude
	if len(exclude) == 0 {
		exclude = git.OwnExecutable(repoPath)
	}

	return config{
		RepoPath: repoPath,
		GitPath:  f.gitPath,
		Timeout:  f.timeout,
		Exclude:  exclude,
		Ignore:   f.ignore,
		LogLevel: level,
	}, nil
}

func env(fallback string, keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func envList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
