package review

import (
	"fmt"
	"log/slog"

	"github.com/lawndlwd/commentguard/internal/diff"
	"github.com/lawndlwd/commentguard/internal/filter"
	"github.com/lawndlwd/commentguard/internal/rules"
	"github.com/lawndlwd/commentguard/internal/types"
)

type Reviewer struct {
	matcher *rules.Matcher
	ignore  *filter.Ignore
	logger  *slog.Logger
}

func New(logger *slog.Logger, ignore *filter.Ignore) *Reviewer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reviewer{
		matcher: rules.NewMatcher(),
		ignore:  ignore,
		logger:  logger,
	}
}

// Review scans text chunk by chunk and stops at the first hunk segment
// holding a disallowed comment. A malformed chunk header aborts the review.
func (r *Reviewer) Review(text string) (types.Result, error) {
	var result types.Result

	for chunk := range diff.Chunks(text) {
		filename, err := diff.Filename(chunk)
		if err != nil {
			r.logger.Error("Error while reading diff filename", "chunk", chunk)
			return result, err
		}
		result.Files++

		if r.ignore.Skip(filename) {
			r.logger.Debug("skipping ignored file", "file", filename)
			continue
		}

		violation, err := r.reviewChunk(filename, chunk)
		if err != nil {
			return result, err
		}
		if violation != nil {
			result.Violation = violation
			return result, nil
		}
	}

	r.logger.Debug("no disallowed comments found", "files", result.Files)
	return result, nil
}

func (r *Reviewer) reviewChunk(filename, chunk string) (*types.Violation, error) {
	for change := range diff.Changes(chunk) {
		lines, err := r.matcher.FindAll(change)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if len(lines) > 0 {
			return &types.Violation{FilePath: filename, Lines: lines}, nil
		}
	}
	return nil, nil
}
