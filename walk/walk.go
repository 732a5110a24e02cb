package walk

import (
	internal "github.com/TFMV/jswt/internal/walk"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Re-export all the types from the internal package
type (
	// Node describes one filesystem entry without following symlinks.
	Node = internal.Node

	// Kind is the type of a Node: file, directory, symlink or other.
	Kind = internal.Kind

	// Visit is what the visitor receives: a node, or a failure at a path.
	Visit = internal.Visit

	// VisitState tells which kind of Visit was received.
	VisitState = internal.VisitState

	// VisitFunc is called for every entry of the tree.
	VisitFunc = internal.VisitFunc

	// Result steers the walk after a visit.
	Result = internal.Result

	// Action is the decision carried by a Result.
	Action = internal.Action

	// Options configures a walk.
	Options = internal.Options

	// FS is a filesystem provider the walker can traverse.
	FS = internal.FS

	// MetadataError reports an entry that could not be lstat'd.
	MetadataError = internal.MetadataError

	// ListingError reports a directory that could not be listed.
	ListingError = internal.ListingError

	// MiddlewareFunc wraps a VisitFunc.
	MiddlewareFunc = internal.MiddlewareFunc

	// Stats counts what a walk has seen.
	Stats = internal.Stats

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel
)

// Re-export all the constants
const (
	KindFile    = internal.KindFile
	KindDir     = internal.KindDir
	KindSymlink = internal.KindSymlink
	KindOther   = internal.KindOther

	StateNode          = internal.StateNode
	StateMetadataError = internal.StateMetadataError
	StateListingError  = internal.StateListingError

	ActionContinue = internal.ActionContinue
	ActionSkip     = internal.ActionSkip
	ActionAbort    = internal.ActionAbort

	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug
)

var (
	// ErrSkipDir as an Abort error skips the entry instead of stopping the walk.
	ErrSkipDir = internal.ErrSkipDir

	// ErrAborted is returned when a visitor aborts without an error.
	ErrAborted = internal.ErrAborted
)

// Walk traverses the tree rooted at root on the local filesystem, parents
// before children, without following symlinks.
func Walk(root string, fn VisitFunc) error {
	return internal.Walk(root, fn)
}

// WalkWithOptions traverses the tree rooted at root with a custom filesystem
// provider or logger.
func WalkWithOptions(root string, fn VisitFunc, opts Options) error {
	return internal.WalkWithOptions(root, fn, opts)
}

// Continue proceeds normally.
func Continue() Result { return internal.Continue() }

// Skip does not descend into the visited directory.
func Skip() Result { return internal.Skip() }

// Abort stops the walk and makes it return err.
func Abort(err error) Result { return internal.Abort(err) }

// FromError continues on nil and aborts with err otherwise.
func FromError(err error) Result { return internal.FromError(err) }

// OS returns the provider for the local filesystem.
func OS() FS { return internal.OS() }

// NewAferoFS returns a provider backed by an afero filesystem.
func NewAferoFS(fs afero.Fs) FS { return internal.NewAferoFS(fs) }

// Chain wraps fn in middlewares, the first one outermost.
func Chain(fn VisitFunc, mws ...MiddlewareFunc) VisitFunc {
	return internal.Chain(fn, mws...)
}

// LoggingMiddleware logs visits at debug level and failures at error level.
func LoggingMiddleware(logger *zap.Logger) MiddlewareFunc {
	return internal.LoggingMiddleware(logger)
}

// StatsMiddleware counts every visit into stats.
func StatsMiddleware(stats *Stats) MiddlewareFunc {
	return internal.StatsMiddleware(stats)
}

// ExcludeMiddleware skips directories whose name matches a glob pattern.
func ExcludeMiddleware(root string, patterns []string) (MiddlewareFunc, error) {
	return internal.ExcludeMiddleware(root, patterns)
}

// NewLogger creates a zap logger with the specified log level.
func NewLogger(level LogLevel) *zap.Logger {
	return internal.NewLogger(level)
}
