package walk

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		mode     os.FileMode
		expected Kind
	}{
		{0644, KindFile},
		{os.ModeDir | 0755, KindDir},
		{os.ModeSymlink | 0777, KindSymlink},
		{os.ModeSymlink | os.ModeDir, KindSymlink},
		{os.ModeNamedPipe, KindOther},
		{os.ModeSocket, KindOther},
		{os.ModeDevice | os.ModeCharDevice, KindOther},
	}
	for _, tt := range tests {
		if got := KindOf(tt.mode); got != tt.expected {
			t.Errorf("KindOf(%v): expected %s, got %s", tt.mode, tt.expected, got)
		}
	}
}

func TestOSReadDir(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tempDir, "dir"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "file.js"), []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := os.Symlink(filepath.Join(tempDir, "dir"), filepath.Join(tempDir, "link")); err != nil {
		t.Skipf("Symlinks not supported: %v", err)
	}

	nodes, err := OS().ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })

	expected := []struct {
		name string
		kind Kind
	}{
		{"dir", KindDir},
		{"file.js", KindFile},
		{"link", KindSymlink},
	}
	if len(nodes) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(nodes))
	}
	for i, e := range expected {
		if nodes[i].Name != e.name || nodes[i].Kind != e.kind {
			t.Errorf("Entry %d: expected %s (%s), got %s (%s)", i, e.name, e.kind, nodes[i].Name, nodes[i].Kind)
		}
	}
}

func TestOSReadDirMissing(t *testing.T) {
	_, err := OS().ReadDir(filepath.Join(t.TempDir(), "missing"))
	if !os.IsNotExist(err) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}

func TestOSLstatDoesNotFollow(t *testing.T) {
	tempDir := t.TempDir()
	link := filepath.Join(tempDir, "link")
	if err := os.Symlink(tempDir, link); err != nil {
		t.Skipf("Symlinks not supported: %v", err)
	}

	node, err := OS().Lstat(link)
	if err != nil {
		t.Fatalf("Lstat failed: %v", err)
	}
	if !node.IsSymlink() || node.IsDir() {
		t.Errorf("Expected a symlink node, got %s", node.Kind)
	}
}

func TestAferoFS(t *testing.T) {
	mem := memTree(t)
	provider := NewAferoFS(mem)

	node, err := provider.Lstat("/root/a.txt")
	if err != nil {
		t.Fatalf("Lstat failed: %v", err)
	}
	if node.Name != "a.txt" || !node.IsFile() {
		t.Errorf("Unexpected node: %+v", node)
	}

	if _, err := provider.Lstat("/root/missing"); !os.IsNotExist(err) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}

	nodes, err := provider.ReadDir("/root")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(nodes) != 2 || nodes[0].Name != "a.txt" || nodes[1].Name != "sub" || !nodes[1].IsDir() {
		t.Errorf("Unexpected listing: %v", nodes)
	}
}

func TestAferoFSOnDisk(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.Symlink(tempDir, filepath.Join(tempDir, "self")); err != nil {
		t.Skipf("Symlinks not supported: %v", err)
	}

	var visits []visitRecord
	err := WalkWithOptions(tempDir, record(&visits, nil), Options{FS: NewAferoFS(afero.NewOsFs())})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(visits) != 2 || visits[1].Kind != KindSymlink {
		t.Errorf("Expected the root and an unfollowed link, got %v", visits)
	}
}
