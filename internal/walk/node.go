package walk

import (
	"os"
)

// Kind discriminates the type of a filesystem entry as reported without
// following symbolic links.
type Kind int

const (
	KindFile    Kind = iota // Regular file
	KindDir                 // Directory
	KindSymlink             // Symbolic link, whatever it points at
	KindOther               // Devices, sockets, pipes and the like
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// KindOf maps the type bits of a file mode to a Kind. Symlink bits win over
// directory bits, since some platforms set both for a link to a directory.
func KindOf(mode os.FileMode) Kind {
	switch {
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode&os.ModeDir != 0:
		return KindDir
	case mode&os.ModeType == 0:
		return KindFile
	default:
		return KindOther
	}
}

// Node describes one entry encountered during a walk.
type Node struct {
	Name string      // Base name of the entry
	Kind Kind        // Entry kind, never resolved through a link
	Mode os.FileMode // Type bits as reported by lstat or the directory listing
}

// NewNode builds a Node from a name and the mode type bits.
func NewNode(name string, mode os.FileMode) *Node {
	return &Node{
		Name: name,
		Kind: KindOf(mode),
		Mode: mode & os.ModeType,
	}
}

func (n *Node) IsDir() bool     { return n != nil && n.Kind == KindDir }
func (n *Node) IsFile() bool    { return n != nil && n.Kind == KindFile }
func (n *Node) IsSymlink() bool { return n != nil && n.Kind == KindSymlink }

// VisitState tells which of the fields of a Visit are populated.
type VisitState int

const (
	// StateNode is an ordinary visit: the node is known and nothing failed.
	StateNode VisitState = iota
	// StateMetadataError means the entry could not be lstat'd. There is no node.
	StateMetadataError
	// StateListingError is the second visit of a directory whose children
	// could not be listed. Both the node and the error are set.
	StateListingError
)

func (s VisitState) String() string {
	switch s {
	case StateNode:
		return "node"
	case StateMetadataError:
		return "metadata-error"
	case StateListingError:
		return "listing-error"
	default:
		return "unknown"
	}
}

// Visit is what a VisitFunc receives for each call.
type Visit struct {
	path  string
	node  *Node
	err   error
	state VisitState
}

func nodeVisit(path string, node *Node) Visit {
	return Visit{path: path, node: node, state: StateNode}
}

func metadataVisit(path string, err error) Visit {
	return Visit{path: path, err: err, state: StateMetadataError}
}

func listingVisit(path string, node *Node, err error) Visit {
	return Visit{path: path, node: node, err: err, state: StateListingError}
}

// Path is the full path of the visited entry: the root as given for the
// first call, parent and child names joined for the rest.
func (v Visit) Path() string { return v.path }

// Node returns the descriptor and whether one is available.
func (v Visit) Node() (*Node, bool) { return v.node, v.node != nil }

// Err is a *MetadataError or a *ListingError, or nil for StateNode.
func (v Visit) Err() error { return v.err }

func (v Visit) State() VisitState { return v.state }
