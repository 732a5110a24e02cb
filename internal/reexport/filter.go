package reexport

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/TFMV/jswt/internal/walk"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
)

var (
	// DefaultIgnoreNames are entries never scanned, wherever they appear.
	DefaultIgnoreNames = []string{
		"index.js",
		"types.js",
		"build",
		"dist",
		"node_modules",
		"tmp",
	}

	// DefaultIgnorePatterns are glob patterns matched against base names.
	DefaultIgnorePatterns = []string{"*.min.*"}

	// DefaultIgnoreTypes are extensions never scanned.
	DefaultIgnoreTypes = []string{".bak", ".git", ".tmp"}

	// LoadableTypes are the extensions of files that are read for typedefs.
	LoadableTypes = []string{".js", ".cjs", ".mjs"}
)

type decision int

const (
	decisionSkip decision = iota // do not read, do not descend
	decisionPass                 // do not read, descend if a directory
	decisionRead                 // read for typedefs
)

// filter decides which entries of a project are scanned.
type filter struct {
	fs       afero.Fs
	names    []string
	patterns []glob.Glob
	types    []string
}

func newFilter(fs afero.Fs, extra []string) (*filter, error) {
	f := &filter{
		fs:    fs,
		types: DefaultIgnoreTypes,
	}
	for _, name := range DefaultIgnoreNames {
		f.names = append(f.names, norm.NFC.String(name))
	}
	for _, p := range append(slices.Clone(DefaultIgnorePatterns), extra...) {
		g, err := glob.Compile(norm.NFC.String(p))
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		f.patterns = append(f.patterns, g)
	}
	return f, nil
}

// decide classifies one visited entry. The walk root is exempt from the
// name rules so that a project living in a directory called "build" or
// "dist" can still be scanned.
func (f *filter) decide(path string, node *walk.Node, isRoot bool) (decision, error) {
	if !isRoot {
		name := norm.NFC.String(node.Name)
		if slices.Contains(f.names, name) {
			return decisionSkip, nil
		}
		for _, g := range f.patterns {
			if g.Match(name) {
				return decisionSkip, nil
			}
		}
		if slices.Contains(f.types, filepath.Ext(name)) {
			return decisionSkip, nil
		}

		// child directories with their own package.json, such as git submodules
		if node.IsDir() {
			nested, err := afero.Exists(f.fs, filepath.Join(path, packageFile))
			if err != nil {
				return decisionSkip, err
			}
			if nested {
				return decisionSkip, nil
			}
		}
	}

	if !node.IsFile() {
		return decisionPass, nil
	}
	if !slices.Contains(LoadableTypes, filepath.Ext(node.Name)) {
		return decisionPass, nil
	}
	return decisionRead, nil
}
