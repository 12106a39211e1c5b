// Package diff splits unified diff text into file chunks and hunk segments.
//
// It works on the raw text only: chunks are cut at "diff --git" and
// segments at "@@". No attempt is made to parse the diff format further.
package diff

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

const (
	FileSeparator = "diff --git"
	HunkSeparator = "@@"
)

// ErrMalformedChunk is returned when a chunk header has no file path.
var ErrMalformedChunk = errors.New("malformed diff chunk")

// Chunks yields the non-empty per-file chunks of text in diff order.
// The preamble before the first separator is usually empty and is skipped.
func Chunks(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for chunk := range strings.SplitSeq(text, FileSeparator) {
			if chunk == "" {
				continue
			}
			if !yield(chunk) {
				return
			}
		}
	}
}

// Changes yields the segments of chunk between hunk headers.
func Changes(chunk string) iter.Seq[string] {
	return strings.SplitSeq(chunk, HunkSeparator)
}

// Filename returns the path named on the first line of chunk, which looks
// like " a/path/to/file b/path/to/file". The first token loses its two
// character prefix.
func Filename(chunk string) (string, error) {
	if chunk == "" {
		return "", fmt.Errorf("%w: no lines", ErrMalformedChunk)
	}
	fields := strings.Fields(firstLine(chunk))
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty header line", ErrMalformedChunk)
	}
	token := []rune(fields[0])
	if len(token) < 2 {
		return "", nil
	}
	return string(token[2:]), nil
}

func firstLine(text string) string {
	if i := strings.IndexFunc(text, isLineBoundary); i >= 0 {
		return text[:i]
	}
	return text
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
