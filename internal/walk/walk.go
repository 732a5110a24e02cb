// Package walk implements a pre-order, depth-first directory walker that
// never follows symbolic links.
//
// The walker visits the root and then every entry beneath it, parents before
// children and children in the order the directory listing returns them.
// A visitor steers the traversal through the Result it returns: Continue,
// Skip to stay out of a directory, or Abort to stop the whole walk. Failures
// to lstat the root or to list a directory are handed to the visitor rather
// than returned, so a caller sees either a completed walk or the single error
// the visitor aborted with.
package walk

import (
	"path/filepath"

	"go.uber.org/zap"
)

// VisitFunc is called once for every entry of the tree, including the root,
// and a second time for a directory whose listing failed.
type VisitFunc func(v Visit) Result

// Options configures a walk.
type Options struct {
	FS     FS          // Filesystem provider, OS() when nil
	Logger *zap.Logger // Debug logging of failures and aborts, silent when nil
}

// Walk traverses the tree rooted at root on the local filesystem.
func Walk(root string, fn VisitFunc) error {
	return WalkWithOptions(root, fn, Options{})
}

// WalkWithOptions traverses the tree rooted at root using the given options.
//
// The root is lstat'd first. If that fails the visitor is called once with a
// *MetadataError and no node, and the walk ends there. Otherwise the root's
// node is named after the base of its absolute path, so "." and "dir/" get
// meaningful names.
//
// The error returned is the one a visitor aborted with, unchanged, or nil.
func WalkWithOptions(root string, fn VisitFunc, opts Options) error {
	w := &walker{fs: opts.FS, fn: fn, logger: opts.Logger}
	if w.fs == nil {
		w.fs = OS()
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}

	node, err := w.fs.Lstat(root)
	if err != nil {
		merr := &MetadataError{Path: root, Err: err}
		w.logger.Debug("cannot lstat root", zap.String("path", root), zap.Error(err))
		_, err = w.fn(metadataVisit(root, merr)).resolve()
		return w.aborted(root, err)
	}
	node.Name = rootName(root)

	return w.walk(root, node)
}

type walker struct {
	fs     FS
	fn     VisitFunc
	logger *zap.Logger
}

func (w *walker) walk(path string, node *Node) error {
	descend, err := w.fn(nodeVisit(path, node)).resolve()
	if err != nil {
		return w.aborted(path, err)
	}
	if !descend || !node.IsDir() {
		return nil
	}

	children, err := w.fs.ReadDir(path)
	if err != nil {
		lerr := &ListingError{Path: path, Err: err}
		w.logger.Debug("cannot list directory", zap.String("path", path), zap.Error(err))
		// the directory is treated as empty unless the visitor gives up
		if _, err := w.fn(listingVisit(path, node, lerr)).resolve(); err != nil {
			return w.aborted(path, err)
		}
		return nil
	}

	for _, child := range children {
		if err := w.walk(filepath.Join(path, child.Name), child); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) aborted(path string, err error) error {
	if err != nil {
		w.logger.Debug("walk aborted", zap.String("path", path), zap.Error(err))
	}
	return err
}

// rootName is the base name of the absolute form of path.
func rootName(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.Base(abs)
}
