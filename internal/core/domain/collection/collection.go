// Package collection is the hierarchy model of a hurl collection: a root
// collection owning folders and files, each carrying local settings, plus a
// flat list of environments.
//
// Nodes live in an arena owned by the Collection and refer to each other by
// Handle. Reads go through Node accessors; every mutation goes through a
// Collection method and is published to subscribed listeners.
package collection

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
	"github.com/hurlstudio/hurlc/internal/core/format"
)

// NodeKind is the variant of a collection node.
type NodeKind int

const (
	KindCollection NodeKind = iota
	KindFolder
	KindFile
	KindEnvironment
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case KindCollection:
		return "collection"
	case KindFolder:
		return "folder"
	case KindFile:
		return "file"
	case KindEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// Handle addresses a node inside its Collection's arena.
type Handle int

// Root is the handle of the collection node.
const Root Handle = 0

// NoHandle is the parent of the root.
const NoHandle Handle = -1

const (
	// FileExtension marks a section path as a File node.
	FileExtension = ".hurl"
	// ImplicitLocation is used when a collection declares no location.
	ImplicitLocation = "."
)

var (
	ErrInvalidHandle = errors.New("invalid node handle")
	ErrNotAllowed    = errors.New("operation not allowed on this node")
	ErrDuplicate     = errors.New("node already exists")
	ErrIndexRange    = errors.New("setting index out of range")
	ErrInvalidName   = errors.New("invalid node name")
)

// Node is a member of the collection tree.
type Node struct {
	kind     NodeKind
	id       Identity
	name     string
	path     string
	parent   Handle
	children []Handle
	settings []setting.Setting
	declared bool
	removed  bool
}

// Kind returns the node variant.
func (n *Node) Kind() NodeKind { return n.kind }

// ID returns the node's stable identity.
func (n *Node) ID() Identity { return n.id }

// Name returns the local name: a location for top-level folders, a path
// segment for nested folders and files, the environment name for
// environments, and the collection name for the root.
func (n *Node) Name() string { return n.name }

// Path returns the collection-relative path of folders and files.
func (n *Node) Path() string { return n.path }

// Parent returns the owning node, NoHandle for the root and environments'
// owner for environments.
func (n *Node) Parent() Handle { return n.parent }

// Children returns the owned folders and files in insertion order.
func (n *Node) Children() []Handle { return append([]Handle(nil), n.children...) }

// Settings returns the node's local settings in insertion order.
func (n *Node) Settings() []setting.Setting { return append([]setting.Setting(nil), n.settings...) }

// Collection is the root of a collection tree.
type Collection struct {
	source     string
	nodes      []*Node
	byPath     map[string]Handle
	envs       []Handle
	envByName  map[string]Handle
	locations  []string
	implicit   bool
	properties []format.Pair

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// New creates an empty collection. source is where the collection text
// lives (usually its file path) and seeds every node identity. It is
// cleaned first so that equivalent spellings of a path agree.
func New(source, name string) *Collection {
	if source != "" {
		source = filepath.Clean(source)
	}
	c := &Collection{
		source:    source,
		byPath:    make(map[string]Handle),
		envByName: make(map[string]Handle),
		listeners: make(map[int]Listener),
	}
	c.nodes = append(c.nodes, &Node{
		kind:   KindCollection,
		id:     rootIdentity(source),
		name:   name,
		parent: NoHandle,
	})
	return c
}

// Source returns the location the collection was created for.
func (c *Collection) Source() string { return c.source }

// Name returns the collection name.
func (c *Collection) Name() string { return c.nodes[Root].name }

// Locations returns the declared member folder locations.
func (c *Collection) Locations() []string {
	if c.implicit {
		return nil
	}
	return append([]string(nil), c.locations...)
}

// Properties returns top-level entries that are neither name nor location.
func (c *Collection) Properties() []format.Pair {
	return append([]format.Pair(nil), c.properties...)
}

// Node returns the node behind h.
func (c *Collection) Node(h Handle) (*Node, bool) {
	if h < 0 || int(h) >= len(c.nodes) || c.nodes[h].removed {
		return nil, false
	}
	return c.nodes[h], true
}

// Settings returns the collection-wide settings.
func (c *Collection) Settings() []setting.Setting {
	return c.nodes[Root].Settings()
}

// Environments returns the environment handles in declaration order.
func (c *Collection) Environments() []Handle {
	return append([]Handle(nil), c.envs...)
}

// Environment looks up an environment by name.
func (c *Collection) Environment(name string) (Handle, bool) {
	h, ok := c.envByName[name]
	return h, ok
}

// Find looks up a folder or file by collection-relative path. The empty
// path names the collection itself.
func (c *Collection) Find(p string) (Handle, bool) {
	if strings.TrimSpace(p) == "" {
		return Root, true
	}
	clean, ok := cleanPath(p)
	if !ok {
		return NoHandle, false
	}
	h, ok := c.byPath[clean]
	return h, ok
}

// FindByID looks up a node by identity.
func (c *Collection) FindByID(id Identity) (Handle, bool) {
	for i, n := range c.nodes {
		if !n.removed && n.id == id {
			return Handle(i), true
		}
	}
	return NoHandle, false
}

// Ancestry returns the handles from the root down to h inclusive.
func (c *Collection) Ancestry(h Handle) ([]Handle, error) {
	n, ok := c.Node(h)
	if !ok {
		return nil, ErrInvalidHandle
	}
	if n.kind == KindEnvironment {
		return nil, ErrNotAllowed
	}
	var chain []Handle
	for cur := h; cur != NoHandle; cur = c.nodes[cur].parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Walk visits the root and every folder and file in pre-order. Returning
// false from fn skips the node's children.
func (c *Collection) Walk(fn func(h Handle, n *Node) bool) {
	c.WalkFrom(Root, fn)
}

// WalkFrom is Walk over the subtree rooted at start.
func (c *Collection) WalkFrom(start Handle, fn func(h Handle, n *Node) bool) {
	if n, ok := c.Node(start); !ok || n.kind == KindEnvironment {
		return
	}
	var visit func(h Handle)
	visit = func(h Handle) {
		n := c.nodes[h]
		if !fn(h, n) {
			return
		}
		for _, child := range n.children {
			visit(child)
		}
	}
	visit(start)
}

// cleanPath normalizes a section path. Absolute and empty paths are
// rejected.
func cleanPath(p string) (string, bool) {
	p = strings.TrimSpace(strings.ReplaceAll(p, `\`, "/"))
	if p == "" || strings.HasPrefix(p, "/") || (len(p) > 1 && p[1] == ':') {
		return "", false
	}
	return path.Clean(p), true
}

// isFileName reports whether a path segment names a request file.
func isFileName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), FileExtension)
}

// locationFor returns the longest location containing p.
func (c *Collection) locationFor(p string) (string, bool) {
	best, found := "", false
	for _, loc := range c.locations {
		var match bool
		switch {
		case p == loc:
			match = true
		case loc == ImplicitLocation:
			match = p != ".." && !strings.HasPrefix(p, "../")
		default:
			match = strings.HasPrefix(p, loc+"/")
		}
		if match && (!found || len(loc) > len(best)) {
			best, found = loc, true
		}
	}
	return best, found
}

// relativeSegments splits p below location loc.
func relativeSegments(loc, p string) []string {
	if p == loc {
		return nil
	}
	rest := p
	if loc != ImplicitLocation {
		rest = strings.TrimPrefix(p, loc+"/")
	}
	return strings.Split(rest, "/")
}

func joinPath(parent, name string) string {
	if parent == ImplicitLocation {
		return name
	}
	return parent + "/" + name
}
