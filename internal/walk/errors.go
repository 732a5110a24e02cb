package walk

import (
	"errors"
	"fmt"
)

var (
	// ErrSkipDir may be passed to Abort, or returned through FromError, to
	// mean the same thing as Skip. It never escapes Walk.
	ErrSkipDir = errors.New("skip this directory")

	// ErrAborted is returned by Walk when a visitor aborts without an error.
	ErrAborted = errors.New("walk aborted")
)

// MetadataError reports that an entry could not be lstat'd.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("lstat %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// ListingError reports that the children of a directory could not be read.
type ListingError struct {
	Path string
	Err  error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("readdir %s: %v", e.Path, e.Err)
}

func (e *ListingError) Unwrap() error { return e.Err }

// Action is the directive carried by a Result.
type Action int

const (
	ActionContinue Action = iota // Recurse if the node is a directory
	ActionSkip                   // Do not recurse; harmless on non-directories
	ActionAbort                  // Stop the whole walk and return Err
)

func (a Action) String() string {
	switch a {
	case ActionContinue:
		return "continue"
	case ActionSkip:
		return "skip"
	case ActionAbort:
		return "abort"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Result is returned by a VisitFunc. The zero value continues.
type Result struct {
	Action Action
	Err    error
}

// Continue descends into directories and moves on from anything else.
func Continue() Result { return Result{} }

// Skip keeps the walk out of the visited directory.
func Skip() Result { return Result{Action: ActionSkip} }

// Abort stops the walk. Walk returns err unchanged, or ErrAborted when err
// is nil. Aborting with ErrSkipDir is the same as Skip.
func Abort(err error) Result {
	return Result{Action: ActionAbort, Err: err}
}

// FromError adapts error-style visitors: nil continues, ErrSkipDir skips and
// anything else aborts.
func FromError(err error) Result {
	if err == nil {
		return Continue()
	}
	return Abort(err)
}

// resolve reports whether the walker may descend and which error, if any,
// must be propagated out of Walk.
func (r Result) resolve() (descend bool, err error) {
	switch r.Action {
	case ActionSkip:
		return false, nil
	case ActionAbort:
		if r.Err == nil {
			return false, ErrAborted
		}
		if errors.Is(r.Err, ErrSkipDir) {
			return false, nil
		}
		return false, r.Err
	default:
		return true, nil
	}
}
