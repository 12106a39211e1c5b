package types

// Violation is a file whose added lines contain disallowed comments.
type Violation struct {
	FilePath string
	Lines    []string
}

// Result is the outcome of reviewing one staged diff.
// A nil Violation means the diff is clean.
type Result struct {
	Violation *Violation
	Files     int // chunks examined before the review stopped
}

func (r Result) Clean() bool {
	return r.Violation == nil
}
