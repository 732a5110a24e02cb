package walk

import (
	"fmt"

	"github.com/gobwas/glob"
	"go.uber.org/zap"
)

// MiddlewareFunc wraps a VisitFunc.
type MiddlewareFunc func(next VisitFunc) VisitFunc

// Chain wraps fn in the given middlewares. The first middleware is the
// outermost one and sees every visit first.
func Chain(fn VisitFunc, mws ...MiddlewareFunc) VisitFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		fn = mws[i](fn)
	}
	return fn
}

// Stats counts what a walk has seen. Walks are sequential, so the counters
// are plain integers.
type Stats struct {
	Files          int64 // Regular files visited
	Dirs           int64 // Directories visited
	Symlinks       int64 // Symbolic links visited, never followed
	Other          int64 // Devices, sockets, pipes
	MetadataErrors int64 // Entries that could not be lstat'd
	ListingErrors  int64 // Directories that could not be listed
	Skipped        int64 // Visits answered with Skip
}

// Total is the number of entries visited, not counting second visits for
// listing errors.
func (s Stats) Total() int64 {
	return s.Files + s.Dirs + s.Symlinks + s.Other
}

func (s Stats) String() string {
	return fmt.Sprintf("%d files, %d dirs, %d symlinks, %d other, %d errors",
		s.Files, s.Dirs, s.Symlinks, s.Other, s.MetadataErrors+s.ListingErrors)
}

// StatsMiddleware records every visit into stats.
func StatsMiddleware(stats *Stats) MiddlewareFunc {
	return func(next VisitFunc) VisitFunc {
		return func(v Visit) Result {
			switch v.State() {
			case StateMetadataError:
				stats.MetadataErrors++
			case StateListingError:
				stats.ListingErrors++
			default:
				node, _ := v.Node()
				switch node.Kind {
				case KindFile:
					stats.Files++
				case KindDir:
					stats.Dirs++
				case KindSymlink:
					stats.Symlinks++
				default:
					stats.Other++
				}
			}
			res := next(v)
			// Skip and Abort(ErrSkipDir) alike
			if descend, err := res.resolve(); !descend && err == nil {
				stats.Skipped++
			}
			return res
		}
	}
}

// LoggingMiddleware logs each visit at debug level and each failure or abort
// at error level.
func LoggingMiddleware(logger *zap.Logger) MiddlewareFunc {
	return func(next VisitFunc) VisitFunc {
		return func(v Visit) Result {
			if v.Err() != nil {
				logger.Error("walk error",
					zap.String("path", v.Path()),
					zap.Stringer("state", v.State()),
					zap.Error(v.Err()),
				)
			} else if node, ok := v.Node(); ok {
				logger.Debug("visiting",
					zap.String("path", v.Path()),
					zap.Stringer("kind", node.Kind),
				)
			}
			res := next(v)
			if res.Action == ActionAbort {
				logger.Error("visitor aborted walk",
					zap.String("path", v.Path()),
					zap.Error(res.Err),
				)
			}
			return res
		}
	}
}

// ExcludeMiddleware skips directories whose base name matches one of the glob
// patterns. The root is never excluded, and non-directories pass through.
func ExcludeMiddleware(root string, patterns []string) (MiddlewareFunc, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}

	return func(next VisitFunc) VisitFunc {
		return func(v Visit) Result {
			node, ok := v.Node()
			if ok && v.State() == StateNode && node.IsDir() && v.Path() != root {
				for _, g := range globs {
					if g.Match(node.Name) {
						return Skip()
					}
				}
			}
			return next(v)
		}
	}, nil
}
