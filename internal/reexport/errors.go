package reexport

import (
	"strings"
)

// ProblemError is a failure the user can fix. It carries a one-line
// description of the problem and the commands that would likely fix it.
type ProblemError struct {
	Problem  string
	Solution []string
	Err      error
}

func (e *ProblemError) Error() string {
	if e.Err != nil {
		return e.Problem + ": " + e.Err.Error()
	}
	return e.Problem
}

func (e *ProblemError) Unwrap() error { return e.Err }

// Fix renders the solution lines, one per line, indented for display.
func (e *ProblemError) Fix(indent string) string {
	return indent + strings.Join(e.Solution, "\n"+indent)
}
