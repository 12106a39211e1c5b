// Package rules holds the comment policy applied to added diff lines.
package rules

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// CommentPattern flags an added line whose // comment does not open with
// WHEN or THEN. The lookahead sits after the backtracking \s+, so a comment
// with more than one space before WHEN is still flagged.
const CommentPattern = `(^\+\s*//\s+(?!(WHEN|THEN)).*$)`

// Matcher finds disallowed comment lines in a change segment.
type Matcher struct {
	re *regexp2.Regexp
}

func NewMatcher() *Matcher {
	return &Matcher{re: regexp2.MustCompile(CommentPattern, regexp2.Multiline)}
}

// FindAll returns every match in segment, in order.
func (m *Matcher) FindAll(segment string) ([]string, error) {
	var found []string
	match, err := m.re.FindStringMatch(segment)
	for match != nil && err == nil {
		found = append(found, match.String())
		match, err = m.re.FindNextMatch(match)
	}
	if err != nil {
		return nil, fmt.Errorf("match comments: %w", err)
	}
	return found, nil
}
