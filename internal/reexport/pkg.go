package reexport

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
)

const packageFile = "package.json"

// Package holds the fields of package.json that reexport cares about.
type Package struct {
	Name string `json:"name"`
	Main string `json:"main"`
}

// ShortName is the package name without its scope: "@org/foo-bar" becomes
// "foo-bar".
func (p Package) ShortName() string {
	if i := strings.LastIndex(p.Name, "/"); i >= 0 {
		return p.Name[i+1:]
	}
	return p.Name
}

// MainIsIndex reports whether "main" points at the generated barrel file.
func (p Package) MainIsIndex() bool {
	return p.Main == "index.js" || p.Main == "./index.js"
}

// ReadPackage loads dir/package.json from fs.
func ReadPackage(fs afero.Fs, dir string) (Package, error) {
	var pkg Package

	data, err := afero.ReadFile(fs, filepath.Join(dir, packageFile))
	if err != nil {
		return pkg, &ProblemError{
			Problem:  "Couldn't read './" + packageFile + "'.",
			Solution: []string{"# Create a new " + packageFile, "npm init"},
			Err:      err,
		}
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return pkg, &ProblemError{
			Problem: "Couldn't parse './" + packageFile + "'.",
			Solution: []string{
				"# Fix missing commas and other simple syntax errors",
				"fixjson -w ./" + packageFile,
			},
			Err: err,
		}
	}
	if pkg.ShortName() == "" {
		return pkg, &ProblemError{
			Problem:  "'./" + packageFile + "' has no \"name\".",
			Solution: []string{"npm pkg set name=<name>"},
		}
	}
	return pkg, nil
}

var titleRe = regexp.MustCompile(`(^\w|[\W_]\w)`)

// ToTitleCase turns a kebab, snake or dotted name into an identifier:
// "foo-bar_baz" becomes "FooBarBaz".
func ToTitleCase(kebab string) string {
	return titleRe.ReplaceAllStringFunc(kebab, func(match string) string {
		if i := strings.IndexFunc(match, isSeparator); i >= 0 {
			_, size := utf8.DecodeRuneInString(match[i:])
			match = match[:i] + match[i+size:]
		}
		return strings.ToUpper(match)
	})
}

func isSeparator(r rune) bool {
	return r == '_' || !isWord(r)
}

func isWord(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}
