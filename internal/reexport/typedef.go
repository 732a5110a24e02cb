package reexport

import (
	"fmt"
	"strings"
)

// Typedef is one exported JSDoc type.
type Typedef struct {
	Name string // the name of the export
	Path string // the importable path, "./lib/foo.js"
}

// Line renders the typedef as a re-export inside a JSDoc block.
func (t Typedef) Line() string {
	return fmt.Sprintf(" * @typedef {import('%s').%s} %s", t.Path, t.Name, t.Name)
}

// ParseTypedefs extracts the typedefs declared in a JavaScript source.
// Typedefs that are themselves imports are not re-exported.
func ParseTypedefs(importPath string, src []byte) []Typedef {
	var typedefs []Typedef
	for _, line := range strings.Split(string(src), "\n") {
		if !strings.Contains(line, "* @typedef ") || strings.Contains(line, "{import(") {
			continue
		}
		parts := strings.Fields(line)
		name := parts[len(parts)-1]
		if name == "*/" && len(parts) > 1 {
			name = parts[len(parts)-2]
		}
		typedefs = append(typedefs, Typedef{Name: name, Path: importPath})
	}
	return typedefs
}

// Lines renders typedefs in order.
func Lines(typedefs []Typedef) []string {
	lines := make([]string, 0, len(typedefs))
	for _, t := range typedefs {
		lines = append(lines, t.Line())
	}
	return lines
}
