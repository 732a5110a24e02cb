// Package reexport regenerates the barrel file of a JavaScript package.
//
// It walks the project for JSDoc @typedef declarations and writes them into
// index.js as re-exports, so that dependent packages can import the types
// from the package root. With the global option the typedefs go to types.js
// instead, which is meant to be picked up by the type checker and never
// published.
package reexport

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/TFMV/jswt/internal/walk"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	indexFile = "index.js"
	typesFile = "types.js"

	generatedHeader = "// " + generatedTag
	generatedTag    = "auto-generated by `jswt reexport`"
	generatedMarker = "generated by `jswt"
)

// Options controls a single run.
type Options struct {
	Global bool     // write typedefs to types.js rather than index.js
	Ignore []string // glob patterns ignored on top of the defaults
}

// Generator writes index.js and types.js for the project in Dir.
type Generator struct {
	Fs     afero.Fs    // project files, read and written
	Walker walk.FS     // provider used to walk the project, NewAferoFS(Fs) when nil
	Dir    string      // project root, "." when empty
	Out    io.Writer   // progress messages, discarded when nil
	ErrOut io.Writer   // warnings, discarded when nil
	Logger *zap.Logger // walk errors, silent when nil
}

// New returns a Generator for the project in dir on the local filesystem.
func New(dir string, out, errOut io.Writer, logger *zap.Logger) *Generator {
	return &Generator{
		Fs:     afero.NewOsFs(),
		Walker: walk.OS(),
		Dir:    dir,
		Out:    out,
		ErrOut: errOut,
		Logger: logger,
	}
}

func (g *Generator) init() {
	if g.Dir == "" {
		g.Dir = "."
	}
	if g.Walker == nil {
		g.Walker = walk.NewAferoFS(g.Fs)
	}
	if g.Out == nil {
		g.Out = io.Discard
	}
	if g.ErrOut == nil {
		g.ErrOut = io.Discard
	}
	if g.Logger == nil {
		g.Logger = zap.NewNop()
	}
}

// Run regenerates the barrel files according to package.json.
func (g *Generator) Run(opts Options) error {
	g.init()

	pkg, err := ReadPackage(g.Fs, g.Dir)
	if err != nil {
		return err
	}

	var indexLines []string
	if opts.Global {
		typedefs, err := g.Typedefs(opts.Ignore)
		if err != nil {
			return err
		}
		if err := g.writeTypes(Lines(typedefs)); err != nil {
			return err
		}
		fmt.Fprintf(g.Out, "Wrote GLOBAL exports to './%s'\n", typesFile)
		indexLines = []string{" * N/A - see global exports in '" + typesFile + "'"}
	} else if err := g.removeIfGenerated(typesFile); err != nil {
		return err
	}

	if !pkg.MainIsIndex() {
		return g.removeIfGenerated(indexFile)
	}

	if indexLines == nil {
		typedefs, err := g.Typedefs(opts.Ignore)
		if err != nil {
			return err
		}
		indexLines = Lines(typedefs)
	}
	return g.writeIndex(pkg.ShortName(), indexLines)
}

// Typedefs walks the project and returns every typedef found, in walk order.
func (g *Generator) Typedefs(ignore []string) ([]Typedef, error) {
	g.init()

	f, err := newFilter(g.Fs, ignore)
	if err != nil {
		return nil, err
	}

	var typedefs []Typedef
	err = walk.WalkWithOptions(g.Dir, func(v walk.Visit) walk.Result {
		if v.Err() != nil {
			g.Logger.Error("unexpected walk error",
				zap.String("path", v.Path()),
				zap.Error(v.Err()),
			)
			return walk.Skip()
		}
		node, ok := v.Node()
		if !ok {
			return walk.Skip()
		}

		d, err := f.decide(v.Path(), node, v.Path() == g.Dir)
		if err != nil {
			return walk.Abort(err)
		}
		switch d {
		case decisionSkip:
			return walk.Skip()
		case decisionPass:
			return walk.Continue()
		}

		src, err := afero.ReadFile(g.Fs, v.Path())
		if err != nil {
			return walk.Abort(fmt.Errorf("failed to read %s: %w", v.Path(), err))
		}
		importPath, err := g.importPath(v.Path())
		if err != nil {
			return walk.Abort(err)
		}
		typedefs = append(typedefs, ParseTypedefs(importPath, src)...)
		return walk.Continue()
	}, walk.Options{FS: g.Walker, Logger: g.Logger})

	return typedefs, err
}

// importPath turns a walked path into "./rel/path.js" relative to Dir.
func (g *Generator) importPath(path string) (string, error) {
	rel, err := filepath.Rel(g.Dir, path)
	if err != nil {
		return "", fmt.Errorf("failed to determine a relative path for %s: %w", path, err)
	}
	return "./" + filepath.ToSlash(rel), nil
}

func (g *Generator) path(name string) string {
	return filepath.Join(g.Dir, name)
}

func (g *Generator) writeTypes(typeLines []string) error {
	lines := []string{
		generatedHeader,
		"// DO NOT EDIT",
		"",
		"// global types (DO NOT include in `package.json.files`)",
		"",
		"/**",
	}
	lines = append(lines, typeLines...)
	lines = append(lines, " */", "")

	return afero.WriteFile(g.Fs, g.path(typesFile), []byte(strings.Join(lines, "\n")), 0o644)
}

func (g *Generator) writeIndex(pkgName string, indexLines []string) error {
	prefix := "."
	hasLib, err := afero.DirExists(g.Fs, g.path("lib"))
	if err != nil {
		return err
	}
	if hasLib {
		prefix = "./lib"
	}
	mainPath := prefix + "/" + pkgName + ".js"

	mainName := ToTitleCase(pkgName)
	lines := []string{
		generatedHeader,
		"// DO NOT EDIT",
		"",
		fmt.Sprintf("import %s from \"%s\";", mainName, mainPath),
		"",
		"// these typedef reexports will be available to dependent packages",
		"/**",
	}
	lines = append(lines, indexLines...)
	lines = append(lines,
		" */",
		"",
		fmt.Sprintf("export default %s;", mainName),
		"",
	)

	existing, err := afero.ReadFile(g.Fs, g.path(indexFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return err
	case !strings.Contains(string(existing), generatedMarker):
		return &ProblemError{
			Problem:  "'./" + indexFile + "' exists and was not generated by 'jswt reexport'.",
			Solution: []string{fmt.Sprintf("git mv %s '%s'", indexFile, mainPath)},
		}
	}

	if err := afero.WriteFile(g.Fs, g.path(indexFile), []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Wrote './%s' (exports '%s')\n", indexFile, mainPath)
	return nil
}

// removeIfGenerated deletes name unless a human wrote it. A missing file is
// not an error.
func (g *Generator) removeIfGenerated(name string) error {
	text, err := afero.ReadFile(g.Fs, g.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !strings.Contains(string(text), generatedTag) {
		fmt.Fprintf(g.ErrOut, "[warn] skipping 'rm ./%s': not generated by 'jswt'\n", name)
		return nil
	}
	return g.Fs.Remove(g.path(name))
}
