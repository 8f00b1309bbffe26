// Package resolve computes the effective settings of a collection node by
// folding the local settings of every level from the collection root down to
// the node.
//
// Overwrite kinds keep the instance closest to the node. Merge kinds keep
// every entry, with a later entry replacing an earlier one of the same key in
// place. Kinds appear in the order they were first introduced along the walk.
package resolve

import (
	"fmt"

	"github.com/hurlstudio/hurlc/internal/core/domain/collection"
	"github.com/hurlstudio/hurlc/internal/core/domain/setting"
)

// Effective returns the effective settings of node h.
func Effective(c *collection.Collection, h collection.Handle) ([]setting.Setting, error) {
	chain, err := c.Ancestry(h)
	if err != nil {
		return nil, fmt.Errorf("resolving node %d: %w", h, err)
	}
	levels := make([][]setting.Setting, 0, len(chain))
	for _, x := range chain {
		n, _ := c.Node(x)
		levels = append(levels, n.Settings())
	}
	return Fold(levels...), nil
}

// EffectivePath is Effective for a collection-relative folder or file path.
func EffectivePath(c *collection.Collection, p string) ([]setting.Setting, error) {
	h, ok := c.Find(p)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, p)
	}
	return Effective(c, h)
}

// Environment returns the settings of environment name, folded on their own.
func Environment(c *collection.Collection, name string) ([]setting.Setting, error) {
	h, ok := c.Environment(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEnvironmentNotFound, name)
	}
	n, _ := c.Node(h)
	return Fold(n.Settings()), nil
}

// Overlay applies env on top of effective as the last level, so environment
// entries win over every tree-derived entry of the same kind and key.
func Overlay(effective, env []setting.Setting) []setting.Setting {
	return Fold(effective, env)
}

// Fold merges levels ordered from the root outwards. Opaque entries with an
// unregistered name are skipped.
func Fold(levels ...[]setting.Setting) []setting.Setting {
	acc := newAccumulator()
	for _, level := range levels {
		for _, s := range level {
			if s == nil || setting.IsUnknown(s) {
				continue
			}
			acc.add(s)
		}
	}
	return acc.list()
}

// slot is the accumulated state of one kind.
type slot struct {
	overwrite setting.Setting
	merged    []setting.Setting
	byKey     map[string]int
}

type accumulator struct {
	order []string
	slots map[string]*slot
}

func newAccumulator() *accumulator {
	return &accumulator{slots: make(map[string]*slot)}
}

func (a *accumulator) add(s setting.Setting) {
	sl, ok := a.slots[s.Name()]
	if !ok {
		sl = &slot{byKey: make(map[string]int)}
		a.slots[s.Name()] = sl
		a.order = append(a.order, s.Name())
	}
	if s.Behavior() == setting.Overwrite {
		sl.overwrite = s
		return
	}
	if i, seen := sl.byKey[s.Key()]; seen {
		sl.merged[i] = s
		return
	}
	sl.byKey[s.Key()] = len(sl.merged)
	sl.merged = append(sl.merged, s)
}

func (a *accumulator) list() []setting.Setting {
	var out []setting.Setting
	for _, name := range a.order {
		sl := a.slots[name]
		if sl.overwrite != nil {
			out = append(out, sl.overwrite)
			continue
		}
		out = append(out, sl.merged...)
	}
	return out
}
