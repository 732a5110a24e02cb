package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TFMV/jswt/internal/reexport"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// chainTree builds root/a/b/c.txt, which has a single possible walk order.
func chainTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "c.txt"), []byte("c"), 0o644))
	return root
}

func TestRunWalkText(t *testing.T) {
	as := require.New(t)
	root := chainTree(t)

	var out bytes.Buffer
	as.NoError(runWalk(&out, root, walkConfig{Format: "text"}, zap.NewNop()))

	expected := strings.Join([]string{
		"dir      " + root,
		"dir      " + filepath.Join(root, "a"),
		"dir      " + filepath.Join(root, "a", "b"),
		"file     " + filepath.Join(root, "a", "b", "c.txt"),
		"",
		"1 files, 3 dirs, 0 symlinks, 0 other, 0 errors",
		"",
	}, "\n")
	as.Equal(expected, out.String())
}

func TestRunWalkSilentOmitsSummary(t *testing.T) {
	as := require.New(t)
	root := chainTree(t)

	var out bytes.Buffer
	as.NoError(runWalk(&out, root, walkConfig{Silent: true}, zap.NewNop()))
	as.NotContains(out.String(), "files,")
	as.Len(strings.Split(strings.TrimSpace(out.String()), "\n"), 4)
}

func TestRunWalkJSON(t *testing.T) {
	as := require.New(t)
	root := chainTree(t)

	var out bytes.Buffer
	as.NoError(runWalk(&out, root, walkConfig{Format: "json"}, zap.NewNop()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	as.Len(lines, 4)

	var last walkEntry
	as.NoError(json.Unmarshal([]byte(lines[3]), &last))
	as.Equal(walkEntry{Path: filepath.Join(root, "a", "b", "c.txt"), Kind: "file", State: "node"}, last)
}

func TestRunWalkYAML(t *testing.T) {
	as := require.New(t)
	root := chainTree(t)

	var out bytes.Buffer
	as.NoError(runWalk(&out, root, walkConfig{Format: "yaml"}, zap.NewNop()))

	var entries []walkEntry
	as.NoError(yaml.Unmarshal(out.Bytes(), &entries))
	as.Len(entries, 4)
	as.Equal(root, entries[0].Path)
	as.Equal("dir", entries[0].Kind)
}

func TestRunWalkExclude(t *testing.T) {
	as := require.New(t)
	root := chainTree(t)

	var out bytes.Buffer
	as.NoError(runWalk(&out, root, walkConfig{ExcludeDir: []string{"b"}}, zap.NewNop()))

	as.Contains(out.String(), filepath.Join(root, "a")+"\n")
	as.NotContains(out.String(), filepath.Join(root, "a", "b"))
	// the excluded directory is counted but never descended into
	as.Contains(out.String(), "0 files, 3 dirs")

	as.Error(runWalk(&out, root, walkConfig{ExcludeDir: []string{"[oops"}}, zap.NewNop()))
}

func TestRunWalkMissingRoot(t *testing.T) {
	as := require.New(t)
	root := filepath.Join(t.TempDir(), "missing")

	var out bytes.Buffer
	as.NoError(runWalk(&out, root, walkConfig{}, zap.NewNop()))
	as.True(strings.HasPrefix(out.String(), "error    lstat "+root))
	as.Contains(out.String(), "1 errors")
}

func TestRunWalkInvalidFormat(t *testing.T) {
	var out bytes.Buffer
	err := runWalk(&out, t.TempDir(), walkConfig{Format: "xml"}, zap.NewNop())
	require.EqualError(t, err, "invalid format: xml")
	require.Empty(t, out.String())
}

func TestPrintErrorProblem(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, &reexport.ProblemError{
		Problem:  "'./package.json' has no \"name\".",
		Solution: []string{"npm pkg set name=<name>"},
	})

	expected := strings.Join([]string{
		"",
		"Error:",
		"    './package.json' has no \"name\".",
		"",
		"Possible fix:",
		"    npm pkg set name=<name>",
		"",
		"",
	}, "\n")
	require.Equal(t, expected, buf.String())
}

func TestPrintErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("boom"))
	require.Equal(t, "Error: boom\n", buf.String())
}

func TestExecuteReexport(t *testing.T) {
	as := require.New(t)

	dir := t.TempDir()
	as.NoError(os.MkdirAll(filepath.Join(dir, "lib"), 0o755))
	as.NoError(os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name": "my-lib", "main": "index.js"}`), 0o644))
	as.NoError(os.WriteFile(filepath.Join(dir, "lib", "my-lib.js"), []byte("/** @typedef {Object} Thing */\n"), 0o644))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"reexport", dir})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	as.NoError(Execute())
	as.Equal("Wrote './index.js' (exports './lib/my-lib.js')\n", out.String())

	index, err := os.ReadFile(filepath.Join(dir, "index.js"))
	as.NoError(err)
	as.Contains(string(index), "import MyLib from \"./lib/my-lib.js\";")
	as.Contains(string(index), " * @typedef {import('./lib/my-lib.js').Thing} Thing\n")
}

func TestExecuteReexportProblem(t *testing.T) {
	as := require.New(t)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"reexport", t.TempDir()})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	var problem *reexport.ProblemError
	as.True(errors.As(Execute(), &problem))
	as.Contains(errOut.String(), "Couldn't read './package.json'.")
	as.Contains(errOut.String(), "Possible fix:\n    # Create a new package.json\n    npm init\n")
}
