package walk

import (
	"os"

	"github.com/karrick/godirwalk"
	"github.com/spf13/afero"
)

// FS is the filesystem a Walk reads from. Neither method may follow a
// symbolic link when reporting an entry's kind.
type FS interface {
	// Lstat describes path itself, not the target of a link.
	Lstat(path string) (*Node, error)
	// ReadDir lists the immediate children of a directory, with their kind,
	// in whatever order the underlying listing produces.
	ReadDir(path string) ([]*Node, error)
}

// osFS reads the local filesystem through godirwalk, which returns the mode
// type of every child straight from the directory entries.
type osFS struct {
	scratch []byte
}

// OS returns the local filesystem provider. The returned value reuses a
// scratch buffer between listings and must not be shared by concurrent walks.
func OS() FS {
	return &osFS{}
}

func (o *osFS) Lstat(path string) (*Node, error) {
	de, err := godirwalk.NewDirent(path)
	if err != nil {
		return nil, err
	}
	return NewNode(de.Name(), de.ModeType()), nil
}

func (o *osFS) ReadDir(path string) ([]*Node, error) {
	if o.scratch == nil {
		o.scratch = make([]byte, godirwalk.MinimumScratchBufferSize)
	}
	dirents, err := godirwalk.ReadDirents(path, o.scratch)
	if err != nil {
		return nil, err
	}
	nodes := make([]*Node, 0, len(dirents))
	for _, de := range dirents {
		nodes = append(nodes, NewNode(de.Name(), de.ModeType()))
	}
	return nodes, nil
}

// aferoFS adapts an afero.Fs. Filesystems that cannot lstat fall back to
// Stat, which is exact for those that have no symbolic links at all.
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS returns a provider reading from fs.
func NewAferoFS(fs afero.Fs) FS {
	return aferoFS{fs: fs}
}

func (a aferoFS) Lstat(path string) (*Node, error) {
	var (
		info os.FileInfo
		err  error
	)
	if l, ok := a.fs.(afero.Lstater); ok {
		info, _, err = l.LstatIfPossible(path)
	} else {
		info, err = a.fs.Stat(path)
	}
	if err != nil {
		return nil, err
	}
	return NewNode(info.Name(), info.Mode()), nil
}

func (a aferoFS) ReadDir(path string) ([]*Node, error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	infos, err := f.Readdir(-1)
	if err != nil {
		return nil, err
	}
	nodes := make([]*Node, 0, len(infos))
	for _, info := range infos {
		nodes = append(nodes, NewNode(info.Name(), info.Mode()))
	}
	return nodes, nil
}
