package collection

import (
	"fmt"
	"strings"

	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
)

// ChangeType identifies a mutation.
type ChangeType int

const (
	SettingAdded ChangeType = iota
	SettingRemoved
	SettingReplaced
	NodeAdded
	NodeRemoved
	PropertyChanged
)

// String returns the change name.
func (t ChangeType) String() string {
	switch t {
	case SettingAdded:
		return "setting-added"
	case SettingRemoved:
		return "setting-removed"
	case SettingReplaced:
		return "setting-replaced"
	case NodeAdded:
		return "node-added"
	case NodeRemoved:
		return "node-removed"
	case PropertyChanged:
		return "property-changed"
	default:
		return "unknown"
	}
}

// Change describes one mutation. Index is the setting position for setting
// changes; Setting holds the new value (or the removed one); Property names
// the changed collection property.
type Change struct {
	Type     ChangeType
	Node     Handle
	Index    int
	Setting  setting.Setting
	Property string
}

// Listener receives changes after they are applied.
type Listener func(Change)

// Subscribe registers l and returns a function that unregisters it.
func (c *Collection) Subscribe(l Listener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Collection) publish(ch Change) {
	c.mu.Lock()
	ls := make([]Listener, 0, len(c.listeners))
	for i := 0; i < c.nextID; i++ {
		if l, ok := c.listeners[i]; ok {
			ls = append(ls, l)
		}
	}
	c.mu.Unlock()

	for _, l := range ls {
		l(ch)
	}
}

func (c *Collection) settingNode(h Handle, s setting.Setting) (*Node, error) {
	n, ok := c.Node(h)
	if !ok {
		return nil, ErrInvalidHandle
	}
	if n.kind == KindEnvironment && s != nil && !allowedInEnvironment(s) {
		return nil, fmt.Errorf("%w: %s in environment %q", ErrNotAllowed, s.Name(), n.name)
	}
	return n, nil
}

// AddSetting appends s to the local settings of h.
func (c *Collection) AddSetting(h Handle, s setting.Setting) error {
	n, err := c.settingNode(h, s)
	if err != nil {
		return err
	}
	n.settings = append(n.settings, s)
	c.publish(Change{Type: SettingAdded, Node: h, Index: len(n.settings) - 1, Setting: s})
	return nil
}

// RemoveSetting removes the setting at index i of h.
func (c *Collection) RemoveSetting(h Handle, i int) error {
	n, err := c.settingNode(h, nil)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(n.settings) {
		return fmt.Errorf("%w: %d", ErrIndexRange, i)
	}
	removed := n.settings[i]
	n.settings = append(n.settings[:i:i], n.settings[i+1:]...)
	c.publish(Change{Type: SettingRemoved, Node: h, Index: i, Setting: removed})
	return nil
}

// ReplaceSetting swaps the setting at index i of h for s.
func (c *Collection) ReplaceSetting(h Handle, i int, s setting.Setting) error {
	n, err := c.settingNode(h, s)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(n.settings) {
		return fmt.Errorf("%w: %d", ErrIndexRange, i)
	}
	n.settings[i] = s
	c.publish(Change{Type: SettingReplaced, Node: h, Index: i, Setting: s})
	return nil
}

// AddFolder creates a folder named name under parent. Under the root, name
// is a location path and is added to the declared locations.
func (c *Collection) AddFolder(parent Handle, name string) (Handle, error) {
	if parent == Root {
		return c.AddLocation(name)
	}
	return c.addChild(parent, KindFolder, name)
}

// AddFile creates a request file named name under a folder.
func (c *Collection) AddFile(parent Handle, name string) (Handle, error) {
	if !isFileName(name) {
		return NoHandle, fmt.Errorf("%w: %q does not end in %s", ErrInvalidName, name, FileExtension)
	}
	if parent == Root {
		return NoHandle, fmt.Errorf("%w: files belong to a folder", ErrNotAllowed)
	}
	return c.addChild(parent, KindFile, name)
}

// AddLocation declares a top-level folder at the collection-relative path
// loc.
func (c *Collection) AddLocation(loc string) (Handle, error) {
	clean, ok := cleanPath(loc)
	if !ok {
		return NoHandle, fmt.Errorf("%w: location %q", ErrInvalidName, loc)
	}
	if _, exists := c.byPath[clean]; exists {
		return NoHandle, fmt.Errorf("%w: %s", ErrDuplicate, clean)
	}
	if c.implicit {
		c.dropImplicit()
	}
	c.locations = append(c.locations, clean)
	h := c.attach(Root, &Node{
		kind: KindFolder,
		id:   childIdentity(c.nodes[Root].id, clean),
		name: clean,
		path: clean,
	})
	c.publish(Change{Type: NodeAdded, Node: h})
	c.publish(Change{Type: PropertyChanged, Node: Root, Property: "location"})
	return h, nil
}

// AddEnvironment creates an environment named name.
func (c *Collection) AddEnvironment(name string) (Handle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return NoHandle, fmt.Errorf("%w: empty environment name", ErrInvalidName)
	}
	if _, exists := c.envByName[name]; exists {
		return NoHandle, fmt.Errorf("%w: environment %s", ErrDuplicate, name)
	}
	h := Handle(len(c.nodes))
	c.nodes = append(c.nodes, &Node{
		kind:     KindEnvironment,
		id:       environmentIdentity(c.nodes[Root].id, name),
		name:     name,
		parent:   Root,
		declared: true,
	})
	c.envs = append(c.envs, h)
	c.envByName[name] = h
	c.publish(Change{Type: NodeAdded, Node: h})
	return h, nil
}

// Remove detaches h and its subtree. The root cannot be removed.
func (c *Collection) Remove(h Handle) error {
	n, ok := c.Node(h)
	if !ok {
		return ErrInvalidHandle
	}
	switch n.kind {
	case KindCollection:
		return fmt.Errorf("%w: cannot remove the collection", ErrNotAllowed)
	case KindEnvironment:
		c.envs = removeHandle(c.envs, h)
		delete(c.envByName, n.name)
		n.removed = true
	default:
		parent := c.nodes[n.parent]
		parent.children = removeHandle(parent.children, h)
		if n.parent == Root {
			c.locations = removeString(c.locations, n.path)
		}
		c.tombstone(h)
	}
	c.publish(Change{Type: NodeRemoved, Node: h})
	return nil
}

// SetName renames the collection.
func (c *Collection) SetName(name string) {
	c.nodes[Root].name = name
	c.publish(Change{Type: PropertyChanged, Node: Root, Property: "name"})
}

func (c *Collection) addChild(parent Handle, kind NodeKind, name string) (Handle, error) {
	p, ok := c.Node(parent)
	if !ok {
		return NoHandle, ErrInvalidHandle
	}
	if p.kind != KindFolder {
		return NoHandle, fmt.Errorf("%w: %s cannot own children", ErrNotAllowed, p.kind)
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return NoHandle, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	full := joinPath(p.path, name)
	if _, exists := c.byPath[full]; exists {
		return NoHandle, fmt.Errorf("%w: %s", ErrDuplicate, full)
	}
	h := c.attach(parent, &Node{
		kind: kind,
		id:   childIdentity(p.id, name),
		name: name,
		path: full,
	})
	c.nodes[h].declared = true
	c.publish(Change{Type: NodeAdded, Node: h})
	return h, nil
}

func (c *Collection) attach(parent Handle, n *Node) Handle {
	h := Handle(len(c.nodes))
	n.parent = parent
	c.nodes = append(c.nodes, n)
	c.nodes[parent].children = append(c.nodes[parent].children, h)
	c.byPath[n.path] = h
	return h
}

func (c *Collection) tombstone(h Handle) {
	n := c.nodes[h]
	n.removed = true
	delete(c.byPath, n.path)
	for _, child := range n.children {
		c.tombstone(child)
	}
}

// dropImplicit retires the implicit "." location before the first real one
// is declared. An empty "." folder is removed; one that already holds files
// or settings becomes a declared location so it is written back.
func (c *Collection) dropImplicit() {
	c.implicit = false
	h, ok := c.byPath[ImplicitLocation]
	if ok && (len(c.nodes[h].children) > 0 || len(c.nodes[h].settings) > 0) {
		return
	}
	c.locations = removeString(c.locations, ImplicitLocation)
	if ok {
		c.nodes[Root].children = removeHandle(c.nodes[Root].children, h)
		c.tombstone(h)
	}
}

func removeHandle(hs []Handle, h Handle) []Handle {
	out := hs[:0]
	for _, x := range hs {
		if x != h {
			out = append(out, x)
		}
	}
	return out
}

func removeString(ss []string, s string) []string {
	out := ss[:0]
	for _, x := range ss {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}

// allowedInEnvironment reports whether s may be stored in an environment.
// Unknown entries are kept so the text survives a round trip.
func allowedInEnvironment(s setting.Setting) bool {
	return s.Behavior() == setting.Merge || setting.IsUnknown(s)
}
