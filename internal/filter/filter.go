// Package filter decides which chunk paths are left out of the review.
package filter

import (
	"path"
	"strings"
)

// Ignore matches file paths against glob patterns.
type Ignore struct {
	patterns []string
}

// NewIgnore builds an Ignore from patterns, dropping blank entries.
func NewIgnore(patterns []string) *Ignore {
	var kept []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return &Ignore{patterns: kept}
}

// Skip reports whether file matches any pattern. A pattern is tried
// against the full slash-separated path, its base name, and as a
// directory prefix ("vendor/" skips everything under vendor).
func (ig *Ignore) Skip(file string) bool {
	if ig == nil || file == "" {
		return false
	}
	for _, p := range ig.patterns {
		if strings.HasSuffix(p, "/") {
			if hasDirPrefix(file, p) {
				return true
			}
			continue
		}
		if ok, _ := path.Match(p, file); ok {
			return true
		}
		if ok, _ := path.Match(p, path.Base(file)); ok {
			return true
		}
	}
	return false
}

func hasDirPrefix(file, dir string) bool {
	return strings.HasPrefix(file, dir) || strings.Contains(file, "/"+dir)
}
